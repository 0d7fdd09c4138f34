package domain

// Category is one of the fixed canonical activity categories.
type Category string

const (
	CategoryStudy         Category = "study"
	CategoryEntertainment Category = "entertainment"
	CategoryWork          Category = "work"
	CategorySocial        Category = "social"
	CategoryProductivity  Category = "productivity"
	CategoryGaming        Category = "gaming"
	CategoryOther         Category = "other"
)

// CanonicalOrder is the enumeration order used for tie-breaks and for any
// summation that has to be reproducible.
var CanonicalOrder = []Category{
	CategoryStudy,
	CategoryEntertainment,
	CategoryWork,
	CategorySocial,
	CategoryProductivity,
	CategoryGaming,
	CategoryOther,
}

// ParseCanonical reports whether label is exactly a canonical category name.
// Matching is case-sensitive: "Study" is a raw label, "study" is canonical.
func ParseCanonical(label string) (Category, bool) {
	for _, c := range CanonicalOrder {
		if string(c) == label {
			return c, true
		}
	}
	return "", false
}

// CategoryBucket maps canonical categories to accumulated minutes.
type CategoryBucket map[Category]float64

// Minutes returns the minutes recorded for c, or 0 when absent.
func (b CategoryBucket) Minutes(c Category) float64 {
	return b[c]
}

// OthersMinutes sums every bucket entry that is neither study nor
// entertainment, in canonical order.
func (b CategoryBucket) OthersMinutes() float64 {
	var sum float64
	for _, c := range CanonicalOrder {
		if c == CategoryStudy || c == CategoryEntertainment {
			continue
		}
		sum += b[c]
	}
	return sum
}

// Total sums all bucket values. The association is study + entertainment +
// others so that the three-bucket view always adds up to exactly this value.
func (b CategoryBucket) Total() float64 {
	return b[CategoryStudy] + b[CategoryEntertainment] + b.OthersMinutes()
}

// Clone returns an independent copy of the bucket.
func (b CategoryBucket) Clone() CategoryBucket {
	out := make(CategoryBucket, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
