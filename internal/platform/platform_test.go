package platform

import (
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/ksyq12/cpf/internal/errors"
)

func TestIsRoot(t *testing.T) {
	if IsRoot() != (os.Geteuid() == 0) {
		t.Errorf("IsRoot() disagrees with os.Geteuid()=%d", os.Geteuid())
	}
}

func TestRequireRoot(t *testing.T) {
	err := RequireRoot()
	if os.Geteuid() == 0 {
		if err != nil {
			t.Errorf("expected nil error as root, got %v", err)
		}
		return
	}
	if !errors.Is(err, errors.ErrRootRequired) {
		t.Errorf("expected ErrRootRequired, got %v", err)
	}
	if errors.HintOf(err) != "Use -h for help." {
		t.Errorf("expected help hint, got %q", errors.HintOf(err))
	}
}

func TestSupported(t *testing.T) {
	err := Supported()
	if runtime.GOOS == "linux" && err != nil {
		t.Errorf("linux should be supported: %v", err)
	}
	if runtime.GOOS != "linux" && err == nil {
		t.Errorf("%s should not be supported", runtime.GOOS)
	}
}

func TestPlatform(t *testing.T) {
	p := Platform()
	if !strings.HasPrefix(p, runtime.GOOS+"/") || !strings.HasSuffix(p, runtime.GOARCH) {
		t.Errorf("unexpected platform string %q", p)
	}
}
