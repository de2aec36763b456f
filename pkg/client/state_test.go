package client

import (
	"testing"

	"codebliss/pkg/preview"

	"github.com/stretchr/testify/assert"
)

func TestInvalidationTable(t *testing.T) {
	reads := []string{OpGetAllMyProjects, OpGetAProject}
	for _, op := range []string{OpSignout, OpCreateProject, OpUpdateProjectName, OpUpdateProjectCode, OpDeleteAProject, OpForkAProject} {
		assert.ElementsMatch(t, reads, Invalidates(op), op)
	}
	assert.Empty(t, Invalidates(OpSignup))
	assert.Empty(t, Invalidates(OpSignin))
}

func TestStateCache(t *testing.T) {
	s := NewState()
	s.store("all", OpGetAllMyProjects)
	s.store("a", OpGetAProject, "a")
	s.store("b", OpGetAProject, "b")

	v, ok := s.cached(OpGetAProject, "b")
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	s.mutated(OpSignin)
	assert.True(t, s.IsCached(OpGetAllMyProjects))

	s.mutated(OpForkAProject)
	assert.False(t, s.IsCached(OpGetAllMyProjects))
	assert.False(t, s.IsCached(OpGetAProject, "a"))
	assert.False(t, s.IsCached(OpGetAProject, "b"))
}

func TestEditorReducers(t *testing.T) {
	s := NewState()
	assert.Equal(t, LanguageHTML, s.Editor().CurrentLanguage)
	assert.False(t, s.UpdateCurrentCode("orphan"))

	p := &Project{ID: "p1", Code: preview.Code{HTML: "<p></p>"}}
	s.SetCurrentProject(p)
	s.SetCurrentLanguage(LanguageJavaScript)
	assert.True(t, s.UpdateCurrentCode("run()"))

	code, ok := s.CurrentCode()
	assert.True(t, ok)
	assert.Equal(t, preview.Code{HTML: "<p></p>", JavaScript: "run()"}, code)
	assert.Empty(t, p.Code.JavaScript, "state holds its own copy")

	editor := s.Editor()
	editor.CurrentProject.Code.HTML = "mutated"
	code, _ = s.CurrentCode()
	assert.Equal(t, "<p></p>", code.HTML)

	s.setUser(&User{ID: "u1"})
	s.reset()
	assert.False(t, s.Auth().IsAuthenticated)
	assert.Nil(t, s.Editor().CurrentProject)
	assert.Equal(t, LanguageJavaScript, s.Editor().CurrentLanguage)
}
