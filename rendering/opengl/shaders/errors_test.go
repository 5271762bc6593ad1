package shaders

import (
	"strings"
	"testing"
)

func TestCompileErrorNamesStage(t *testing.T) {
	err := &CompileError{Stage: "fragment", Log: "0:7: 'foo' : undeclared identifier"}
	msg := err.Error()
	if !strings.Contains(msg, "fragment") {
		t.Errorf("error %q does not name the failing stage", msg)
	}
	if !strings.Contains(msg, "undeclared identifier") {
		t.Errorf("error %q does not carry the compiler diagnostic", msg)
	}
}

func TestLinkErrorCarriesLog(t *testing.T) {
	err := &LinkError{Log: "varying vOpacity not written"}
	if !strings.Contains(err.Error(), "varying vOpacity not written") {
		t.Errorf("error %q does not carry the linker diagnostic", err.Error())
	}
}
