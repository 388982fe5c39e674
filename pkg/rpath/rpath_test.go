package rpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsRooted(t *testing.T) {
	_, err := New("/etc/passwd")
	require.Error(t, err)
}

func TestNewRejectsBackslash(t *testing.T) {
	_, err := New(`foo\bar`)
	require.Error(t, err)
}

func TestNewRejectsColon(t *testing.T) {
	_, err := New("C:/foo")
	require.Error(t, err)
}

func TestNewEmpty(t *testing.T) {
	p, err := New("")
	require.NoError(t, err)
	assert.True(t, p.Empty())
	assert.Equal(t, "", p.String())
}

func TestNewCollapsesEmptySegments(t *testing.T) {
	p, err := New("a//b/")
	require.NoError(t, err)
	assert.Equal(t, "a/b", p.String())
}

func TestDirnameOfEmptyFails(t *testing.T) {
	_, err := RelativePath{}.Dirname()
	require.Error(t, err)
}

func TestDirnameOfSingleComponentIsEmpty(t *testing.T) {
	p := MustNew("a.txt")
	d, err := p.Dirname()
	require.NoError(t, err)
	assert.True(t, d.Empty())
}

func TestDirnameNested(t *testing.T) {
	p := MustNew("a/b/c.txt")
	d, err := p.Dirname()
	require.NoError(t, err)
	assert.Equal(t, "a/b", d.String())
}

func TestBasenameOfEmptyFails(t *testing.T) {
	_, err := RelativePath{}.Basename()
	require.Error(t, err)
}

func TestBasename(t *testing.T) {
	b, err := MustNew("a/b/c.txt").Basename()
	require.NoError(t, err)
	assert.Equal(t, "c.txt", b)
}

func TestAddExtOnNonEmpty(t *testing.T) {
	p := MustNew("report").AddExt(".txt")
	assert.Equal(t, "report.txt", p.String())
}

func TestAddExtOnEmptyCreatesComponent(t *testing.T) {
	p := RelativePath{}.AddExt(".txt")
	assert.Equal(t, ".txt", p.String())
}

func TestJoin(t *testing.T) {
	p := MustNew("a/b").Join(MustNew("c/d.txt"))
	assert.Equal(t, "a/b/c/d.txt", p.String())
}

func TestSplitExtNormal(t *testing.T) {
	base, ext, split := MustNew("docs/report.longext").SplitExt()
	assert.True(t, split)
	assert.Equal(t, "docs/report", base.String())
	assert.Equal(t, ".longext", ext)
}

func TestSplitExtNoDot(t *testing.T) {
	p := MustNew("docs/report")
	base, ext, split := p.SplitExt()
	assert.False(t, split)
	assert.Equal(t, "", ext)
	assert.True(t, base.Equal(p))
}

func TestSplitExtDotfile(t *testing.T) {
	p := MustNew(".hidden.longext")
	base, ext, split := p.SplitExt()
	assert.False(t, split)
	assert.Equal(t, "", ext)
	assert.True(t, base.Equal(p))
}

func TestSplitExtOnEmpty(t *testing.T) {
	base, ext, split := RelativePath{}.SplitExt()
	assert.False(t, split)
	assert.Equal(t, "", ext)
	assert.True(t, base.Empty())
}
