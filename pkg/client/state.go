package client

import (
	"strings"
	"sync"

	"codebliss/pkg/preview"
)

type Language string

const (
	LanguageHTML       Language = "html"
	LanguageCSS        Language = "css"
	LanguageJavaScript Language = "javascript"
)

// Cached read operations.
const (
	OpGetAllMyProjects = "getAllMyProjects"
	OpGetAProject      = "getAProject"
)

// Mutations.
const (
	OpSignup            = "signup"
	OpSignin            = "signin"
	OpSignout           = "signout"
	OpCreateProject     = "createProject"
	OpUpdateProjectName = "updateProjectName"
	OpUpdateProjectCode = "updateProjectCode"
	OpDeleteAProject    = "deleteAProject"
	OpForkAProject      = "forkAProject"
)

// invalidations lists, per mutation, the cached reads a success makes stale.
var invalidations = map[string][]string{
	OpSignup:            nil,
	OpSignin:            nil,
	OpSignout:           {OpGetAllMyProjects, OpGetAProject},
	OpCreateProject:     {OpGetAllMyProjects, OpGetAProject},
	OpUpdateProjectName: {OpGetAllMyProjects, OpGetAProject},
	OpUpdateProjectCode: {OpGetAllMyProjects, OpGetAProject},
	OpDeleteAProject:    {OpGetAllMyProjects, OpGetAProject},
	OpForkAProject:      {OpGetAllMyProjects, OpGetAProject},
}

// Invalidates returns the cached operations made stale by mutation.
func Invalidates(mutation string) []string {
	return append([]string(nil), invalidations[mutation]...)
}

type AuthState struct {
	IsAuthenticated bool
	User            *User
}

type EditorState struct {
	CurrentLanguage Language
	CurrentProject  *Project
}

type cacheEntry struct {
	op    string
	value interface{}
}

// State is the client-side mirror of the signed in user, the open editor
// and the results of cached reads. It is safe for concurrent use.
type State struct {
	mu     sync.RWMutex
	auth   AuthState
	editor EditorState
	cache  map[string]cacheEntry
}

func NewState() *State {
	return &State{
		editor: EditorState{CurrentLanguage: LanguageHTML},
		cache:  make(map[string]cacheEntry),
	}
}

func cacheKey(op string, args ...string) string {
	return op + "(" + strings.Join(args, ",") + ")"
}

func (s *State) Auth() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

func (s *State) setUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = AuthState{IsAuthenticated: u != nil, User: u}
}

// Editor returns a copy of the editor state; CurrentProject is copied too.
func (s *State) Editor() EditorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.editor
	if e.CurrentProject != nil {
		p := *e.CurrentProject
		e.CurrentProject = &p
	}
	return e
}

func (s *State) SetCurrentLanguage(lang Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.CurrentLanguage = lang
}

func (s *State) SetCurrentProject(p *Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.editor.CurrentProject = nil
		return
	}
	cp := *p
	s.editor.CurrentProject = &cp
}

// UpdateCurrentCode replaces the source of the current language in the open
// project. It reports false when no project is open.
func (s *State) UpdateCurrentCode(source string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.editor.CurrentProject
	if p == nil {
		return false
	}
	switch s.editor.CurrentLanguage {
	case LanguageCSS:
		p.Code.CSS = source
	case LanguageJavaScript:
		p.Code.JavaScript = source
	default:
		p.Code.HTML = source
	}
	return true
}

// CurrentCode is the code of the open project, or the zero value.
func (s *State) CurrentCode() (preview.Code, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.editor.CurrentProject == nil {
		return preview.Code{}, false
	}
	return s.editor.CurrentProject.Code, true
}

func (s *State) cached(op string, args ...string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.cache[cacheKey(op, args...)]
	return e.value, ok
}

func (s *State) store(value interface{}, op string, args ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[cacheKey(op, args...)] = cacheEntry{op: op, value: value}
}

// IsCached reports whether a result for op and args is held.
func (s *State) IsCached(op string, args ...string) bool {
	_, ok := s.cached(op, args...)
	return ok
}

// mutated drops every cache entry the mutation invalidates.
func (s *State) mutated(mutation string) {
	ops := invalidations[mutation]
	if len(ops) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.cache {
		for _, op := range ops {
			if e.op == op {
				delete(s.cache, key)
				break
			}
		}
	}
}

// reset clears everything a signed out session must not retain.
func (s *State) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = AuthState{}
	s.editor.CurrentProject = nil
}
