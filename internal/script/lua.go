package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mathstorm/internal/engine/history"
)

// DefaultLuaTimeout bounds a Lua macro run.
const DefaultLuaTimeout = 5 * time.Second

// LuaModule is the global table the editing API is installed under.
const LuaModule = "ms"

// LuaOption configures a Lua run.
type LuaOption func(*luaRunner)

// WithTimeout sets the execution timeout. Zero disables it.
func WithTimeout(d time.Duration) LuaOption {
	return func(r *luaRunner) {
		r.timeout = d
	}
}

// WithOutput sets where Lua print writes. The default discards output.
func WithOutput(w io.Writer) LuaOption {
	return func(r *luaRunner) {
		if w != nil {
			r.out = w
		}
	}
}

// luaRunner binds one Lua state to a Target for the duration of a run.
type luaRunner struct {
	target  Target
	timeout time.Duration
	out     io.Writer
	result  *Result
}

// RunLua executes a Lua macro against t. The macro sees the editing API as
// the global table ms:
//
//	ms.text(s)            insert characters
//	ms.insert(id)         insert a palette entry
//	ms.left([n])          move left, returns steps taken
//	ms.right([n])         move right, returns steps taken
//	ms.delete([n])        delete backward, returns deletions made
//	ms.seek_start()       move to the start, returns steps taken
//	ms.seek_end()         move to the end, returns steps taken
//	ms.clear()            discard the expression
//	ms.commit()           commit, returns the committed markup
//	ms.markup()           current markup
//	ms.caret()            current markup with the caret
//	ms.depth()            cursor nesting depth
//	ms.empty()            whether the expression is empty
//	ms.search(q[, limit]) palette ids matching q
//
// Only the base, table, string and math libraries are available.
func RunLua(ctx context.Context, t Target, source string, opts ...LuaOption) (*Result, error) {
	r := &luaRunner{
		target:  t,
		timeout: DefaultLuaTimeout,
		out:     io.Discard,
		result:  &Result{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r.run(ctx, source)
}

// RunLuaFile executes the Lua macro at path against t.
func RunLuaFile(ctx context.Context, t Target, path string, opts ...LuaOption) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading macro %s: %w", path, err)
	}
	return RunLua(ctx, t, string(data), opts...)
}

func (r *luaRunner) run(ctx context.Context, source string) (res *Result, err error) {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // We'll open selectively
	})
	defer L.Close()

	openSafeLibraries(L)
	L.SetGlobal("print", L.NewFunction(r.print))
	r.register(L)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	L.SetContext(ctx)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
	}()

	if err := L.DoString(source); err != nil {
		return r.result, err
	}
	r.result.Markup = r.target.Markup()
	return r.result, nil
}

// openSafeLibraries opens only the side-effect free standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// No io, os, debug or package.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func (r *luaRunner) register(L *lua.LState) {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"text":       r.text,
		"insert":     r.insert,
		"left":       r.moves(r.target.SeekLeft),
		"right":      r.moves(r.target.SeekRight),
		"delete":     r.moves(r.target.DeleteBackward),
		"seek_start": r.seek(r.target.SeekStart),
		"seek_end":   r.seek(r.target.SeekEnd),
		"clear":      r.clear,
		"commit":     r.commit,
		"markup":     r.markup,
		"caret":      r.caret,
		"depth":      r.depth,
		"empty":      r.empty,
		"search":     r.search,
	})
	L.SetGlobal(LuaModule, mod)
}

// text(s)
func (r *luaRunner) text(L *lua.LState) int {
	if err := r.target.InsertText(L.CheckString(1)); err != nil {
		L.RaiseError("text: %v", err)
		return 0
	}
	r.result.Steps++
	return 0
}

// insert(id)
func (r *luaRunner) insert(L *lua.LState) int {
	if err := r.target.InsertSymbol(L.CheckString(1)); err != nil {
		L.RaiseError("insert: %v", err)
		return 0
	}
	r.result.Steps++
	return 0
}

// moves wraps a single-step edit as fn([n]) -> count.
func (r *luaRunner) moves(step func() bool) lua.LGFunction {
	return func(L *lua.LState) int {
		n := L.OptInt(1, 1)
		done := 0
		for done < n && step() {
			done++
		}
		r.result.Steps++
		L.Push(lua.LNumber(done))
		return 1
	}
}

// seek wraps a seek-to-boundary as fn() -> steps.
func (r *luaRunner) seek(fn func() int) lua.LGFunction {
	return func(L *lua.LState) int {
		r.result.Steps++
		L.Push(lua.LNumber(fn()))
		return 1
	}
}

// clear()
func (r *luaRunner) clear(L *lua.LState) int {
	r.target.Clear()
	r.result.Steps++
	return 0
}

// commit() -> markup
func (r *luaRunner) commit(L *lua.LState) int {
	entry, err := r.target.Commit()
	if err != nil {
		L.RaiseError("commit: %v", err)
		return 0
	}
	r.record(entry)
	L.Push(lua.LString(entry.Markup))
	return 1
}

func (r *luaRunner) record(entry *history.Entry) {
	r.result.Steps++
	r.result.Commits = append(r.result.Commits, entry)
}

// markup() -> string
func (r *luaRunner) markup(L *lua.LState) int {
	L.Push(lua.LString(r.target.Markup()))
	return 1
}

// caret() -> string
func (r *luaRunner) caret(L *lua.LState) int {
	L.Push(lua.LString(r.target.CaretMarkup()))
	return 1
}

// depth() -> number
func (r *luaRunner) depth(L *lua.LState) int {
	L.Push(lua.LNumber(r.target.Depth()))
	return 1
}

// empty() -> bool
func (r *luaRunner) empty(L *lua.LState) int {
	L.Push(lua.LBool(r.target.IsEmpty()))
	return 1
}

// search(query[, limit]) -> {ids}
func (r *luaRunner) search(L *lua.LState) int {
	query := L.CheckString(1)
	limit := L.OptInt(2, 0)

	tbl := L.NewTable()
	for i, res := range r.target.Palette().Search(query, limit) {
		tbl.RawSetInt(i+1, lua.LString(res.Entry.ID))
	}
	L.Push(tbl)
	return 1
}

// print(...) writes tab-separated values to the configured output.
func (r *luaRunner) print(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, top)
	for i := 1; i <= top; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}
