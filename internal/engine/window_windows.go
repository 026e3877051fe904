//go:build windows

package engine

import (
	"Globe3D/internal/renderer"
	"syscall"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	DWMWA_USE_IMMERSIVE_DARK_MODE = 20
	DWMWA_BORDER_COLOR            = 34
	DWMWA_CAPTION_COLOR           = 35
)

// styleWindow gives the title bar the dark look of the space backdrop.
func styleWindow(window *glfw.Window) {
	hwnd := window.GetWin32Window()
	if hwnd == nil {
		return
	}

	var useDarkMode int32 = 1
	setWindowAttribute(unsafe.Pointer(hwnd), DWMWA_USE_IMMERSIVE_DARK_MODE, unsafe.Pointer(&useDarkMode), unsafe.Sizeof(useDarkMode))

	// COLORREF is 0x00BBGGRR
	r, g, b := renderer.ClearColorR, renderer.ClearColorG, renderer.ClearColorB
	colorBGR := uint32(uint8(b*255))<<16 | uint32(uint8(g*255))<<8 | uint32(uint8(r*255))
	setWindowAttribute(unsafe.Pointer(hwnd), DWMWA_BORDER_COLOR, unsafe.Pointer(&colorBGR), unsafe.Sizeof(colorBGR))
	setWindowAttribute(unsafe.Pointer(hwnd), DWMWA_CAPTION_COLOR, unsafe.Pointer(&colorBGR), unsafe.Sizeof(colorBGR))
}

func setWindowAttribute(hwnd unsafe.Pointer, attr uintptr, value unsafe.Pointer, size uintptr) {
	procDwmSetWindowAttribute.Call(uintptr(hwnd), attr, uintptr(value), size)
}
