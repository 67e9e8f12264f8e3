package linkline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderLibrarySanitizesName(t *testing.T) {
	lib := Lib{Kind: KindLibrary, Name: "m; rm -rf /"}
	assert.Equal(t, "-lmrmrf", lib.Render())
}

func TestRenderFramework(t *testing.T) {
	lib := Lib{Kind: KindFramework, Name: "CoreFoundation"}
	assert.Equal(t, `-framework "CoreFoundation"`, lib.Render())
}

func TestRenderFileQuotesPath(t *testing.T) {
	lib := Lib{Kind: KindFile, Name: "/opt/libs/extra.a"}
	assert.Equal(t, `"/opt/libs/extra.a"`, lib.Render())
}

func TestBuildConcatenationOrder(t *testing.T) {
	libs := []Lib{
		{Kind: KindLibrary, Name: "m"},
		{Kind: KindFramework, Name: "Cocoa"},
	}
	cmd := Build("ld", []string{"-static"}, libs, "out.o", "a.out")

	assert.Equal(t, "ld", cmd.Linker)
	assert.Equal(t, []string{"-static", "-lm", `-framework "Cocoa"`, "out.o", "-o", "a.out"}, cmd.Args)
}
