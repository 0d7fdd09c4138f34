package activity

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClockDuration parses "HH:MM:SS" or "MM:SS" into seconds.
func ParseClockDuration(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		nums[i] = n
	}
	switch len(nums) {
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2], nil
	case 2:
		return nums[0]*60 + nums[1], nil
	default:
		return 0, fmt.Errorf("invalid duration %q", s)
	}
}
