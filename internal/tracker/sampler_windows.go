package tracker

import (
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow   = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcID = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowTextW        = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW  = user32.NewProc("GetWindowTextLengthW")
)

type foregroundSampler struct{}

// NewForegroundSampler returns a Sampler backed by the Win32 foreground
// window APIs.
func NewForegroundSampler() Sampler {
	return foregroundSampler{}
}

func (foregroundSampler) Sample() (Window, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return Window{}, ErrNoForegroundWindow
	}
	var pid uint32
	_, _, err := procGetWindowThreadProcID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return Window{}, err
	}

	name, err := processName(pid)
	if err != nil {
		return Window{}, err
	}
	return Window{Process: name, Title: windowText(hwnd), PID: pid}, nil
}

func windowText(hwnd uintptr) string {
	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}

// processName walks the process snapshot for pid's executable name.
func processName(pid uint32) (string, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(snap)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	if err := windows.Process32First(snap, &entry); err != nil {
		return "", err
	}
	for {
		if entry.ProcessID == pid {
			return strings.TrimSuffix(windows.UTF16ToString(entry.ExeFile[:]), ".exe"), nil
		}
		if err := windows.Process32Next(snap, &entry); err != nil {
			return "", err
		}
	}
}
