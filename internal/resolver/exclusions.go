package resolver

import (
	"strings"

	"github.com/winstage/winstage/util/sliceutil"
)

// Libraries which are guaranteed to be present on any supported Windows
// installation. These are never searched for and never copied into the
// distribution directory.
var systemLibraries = []string{
	"advapi32.dll",
	"bcrypt.dll",
	"comctl32.dll",
	"comdlg32.dll",
	"crypt32.dll",
	"d3d11.dll",
	"dnsapi.dll",
	"dwmapi.dll",
	"dxgi.dll",
	"gdi32.dll",
	"gdiplus.dll",
	"hid.dll",
	"imm32.dll",
	"iphlpapi.dll",
	"kernel32.dll",
	"mpr.dll",
	"msimg32.dll",
	"msvcrt.dll",
	"ncrypt.dll",
	"netapi32.dll",
	"ntdll.dll",
	"ole32.dll",
	"oleaut32.dll",
	"opengl32.dll",
	"psapi.dll",
	"rpcrt4.dll",
	"setupapi.dll",
	"shell32.dll",
	"shlwapi.dll",
	"urlmon.dll",
	"user32.dll",
	"userenv.dll",
	"usp10.dll",
	"uxtheme.dll",
	"version.dll",
	"winmm.dll",
	"winspool.drv",
	"ws2_32.dll",
	"wsock32.dll",
}

// API set libraries are forwarders implemented by the Windows loader,
// they never exist as regular files we could stage.
var systemLibraryPrefixes = []string{
	"api-ms-win-",
	"ext-ms-win-",
}

// IsSystemLibrary returns whether the library name belongs to the
// base-OS libraries which are assumed to be present on the target
// system. PE import names are matched case-insensitively.
func IsSystemLibrary(name string) bool {
	name = strings.ToLower(name)
	if sliceutil.Contains(systemLibraries, name) {
		return true
	}
	for _, prefix := range systemLibraryPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
