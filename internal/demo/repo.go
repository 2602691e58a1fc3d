// Package demo provides an in-memory jj repository for trying the resolver
// and for testing it without a jj binary.
package demo

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	jjerrors "jjdiverge.dev/jjdiverge/internal/errors"
	"jjdiverge.dev/jjdiverge/internal/jj"
)

// Commit is one simulated revision
type Commit struct {
	ChangeID    jj.ChangeID
	CommitID    jj.CommitID
	Description string
	Parents     []jj.CommitID
	Conflicted  bool
	// Files holds the contents this commit writes, by path.
	Files map[string]string
}

// Repo simulates the subset of jj the resolver uses. Commits are kept in
// creation order and listed newest first, as jj log does.
type Repo struct {
	mu        sync.Mutex
	commits   []*Commit
	abandoned map[jj.CommitID]bool
	ops       []string
	calls     map[string]int
	failures  map[string]error
	nextID    int
	delay     time.Duration

	// OnResolve runs at the start of every ResolveChangeIDs call, before the
	// lock is taken, so it may modify the repository.
	OnResolve func(ids []jj.ChangeID)
}

// NewRepo creates an empty repository
func NewRepo() *Repo {
	return &Repo{
		abandoned: make(map[jj.CommitID]bool),
		calls:     make(map[string]int),
		failures:  make(map[string]error),
	}
}

// WithDelay makes every call sleep for d, to mimic jj's latency
func (r *Repo) WithDelay(d time.Duration) *Repo {
	r.delay = d
	return r
}

// Add records a commit. An empty CommitID gets a generated one.
func (r *Repo) Add(c Commit) jj.CommitID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.CommitID == "" {
		c.CommitID = r.newCommitID()
	}
	c.Parents = slices.Clone(c.Parents)
	c.Files = maps.Clone(c.Files)
	if c.Files == nil {
		c.Files = map[string]string{}
	}
	r.commits = append(r.commits, &c)
	return c.CommitID
}

// FailNext makes the next call to method return err
func (r *Repo) FailNext(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[method] = err
}

// Calls returns how often method was called
func (r *Repo) Calls(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[method]
}

// Operations returns the mutations applied so far, oldest first
func (r *Repo) Operations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.ops)
}

// Visible returns the commits that have not been abandoned, newest first
func (r *Repo) Visible() []Commit {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Commit
	for _, c := range r.visible() {
		out = append(out, *c)
	}
	return out
}

// Commit returns a visible commit by id
func (r *Repo) Commit(id jj.CommitID) (Commit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.lookup(id)
	if c == nil {
		return Commit{}, false
	}
	return *c, true
}

// enter counts the call and returns an injected failure, if any
func (r *Repo) enter(method string) error {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.calls[method]++
	if err, ok := r.failures[method]; ok {
		delete(r.failures, method)
		return err
	}
	return nil
}

func (r *Repo) newCommitID() jj.CommitID {
	r.nextID++
	return jj.CommitID(fmt.Sprintf("%012x", uint64(r.nextID)*0x9e3779b97f4a7c15>>16))
}

func (r *Repo) visible() []*Commit {
	var out []*Commit
	for i := len(r.commits) - 1; i >= 0; i-- {
		if c := r.commits[i]; !r.abandoned[c.CommitID] {
			out = append(out, c)
		}
	}
	return out
}

func (r *Repo) lookup(id jj.CommitID) *Commit {
	for _, c := range r.commits {
		if c.CommitID == id && !r.abandoned[id] {
			return c
		}
	}
	return nil
}

func (r *Repo) mustLookup(id jj.CommitID) (*Commit, error) {
	c := r.lookup(id)
	if c == nil {
		return nil, fmt.Errorf("revision %q doesn't exist", id)
	}
	return c, nil
}

func (r *Repo) children(id jj.CommitID) []*Commit {
	var out []*Commit
	for _, c := range r.visible() {
		if slices.Contains(c.Parents, id) {
			out = append(out, c)
		}
	}
	return out
}

// isAncestor reports whether a is a strict ancestor of c
func (r *Repo) isAncestor(a jj.CommitID, c *Commit) bool {
	for _, p := range c.Parents {
		if p == a {
			return true
		}
		if parent := r.lookup(p); parent != nil && r.isAncestor(a, parent) {
			return true
		}
	}
	return false
}

// rewrite gives c a new commit id and rewrites its descendants to point at it
func (r *Repo) rewrite(c *Commit) {
	old := c.CommitID
	c.CommitID = r.newCommitID()
	for _, child := range r.children(old) {
		for i, p := range child.Parents {
			if p == old {
				child.Parents[i] = c.CommitID
			}
		}
		r.rewrite(child)
	}
}

// ListDivergentChangeIDs implements resolver.Querier
func (r *Repo) ListDivergentChangeIDs(_ context.Context) ([]jj.ChangeID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("ListDivergentChangeIDs"); err != nil {
		return nil, err
	}

	var ids []string
	for _, c := range r.visible() {
		ids = append(ids, string(c.ChangeID))
	}
	return jj.DuplicateChangeIDs(ids), nil
}

// ResolveChangeIDs implements resolver.Querier. Revisions of the given changes
// that descend from another selected revision are left out.
func (r *Repo) ResolveChangeIDs(_ context.Context, ids []jj.ChangeID) ([]jj.CommitInfo, error) {
	if r.OnResolve != nil {
		r.OnResolve(ids)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("ResolveChangeIDs"); err != nil {
		return nil, err
	}

	var selected []*Commit
	for _, c := range r.visible() {
		if slices.Contains(ids, c.ChangeID) {
			selected = append(selected, c)
		}
	}

	var infos []jj.CommitInfo
	for _, c := range selected {
		descendant := false
		for _, other := range selected {
			if other != c && r.isAncestor(other.CommitID, c) {
				descendant = true
				break
			}
		}
		if !descendant {
			infos = append(infos, jj.CommitInfo{ChangeID: c.ChangeID, CommitID: c.CommitID})
		}
	}
	return infos, nil
}

// FirstRevision implements resolver.Querier
func (r *Repo) FirstRevision(_ context.Context, id jj.ChangeID) (jj.CommitID, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("FirstRevision"); err != nil {
		return "", false, err
	}

	for _, c := range r.visible() {
		if c.ChangeID == id {
			return c.CommitID, true, nil
		}
	}
	return "", false, nil
}

// Description implements resolver.Querier
func (r *Repo) Description(_ context.Context, rev jj.CommitID) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("Description"); err != nil {
		return "", err
	}

	c, err := r.mustLookup(rev)
	if err != nil {
		return "", err
	}
	return c.Description, nil
}

// HasConflicts implements resolver.Querier
func (r *Repo) HasConflicts(_ context.Context, rev jj.CommitID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("HasConflicts"); err != nil {
		return false, err
	}

	c, err := r.mustLookup(rev)
	if err != nil {
		return false, err
	}
	return c.Conflicted, nil
}

// ParentCount implements resolver.Querier
func (r *Repo) ParentCount(_ context.Context, rev jj.CommitID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("ParentCount"); err != nil {
		return 0, err
	}

	c, err := r.mustLookup(rev)
	if err != nil {
		return 0, err
	}
	return len(c.Parents), nil
}

// Interdiff implements resolver.Querier
func (r *Repo) Interdiff(_ context.Context, from, to jj.CommitID, external bool) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("Interdiff"); err != nil {
		return "", err
	}

	a, err := r.mustLookup(from)
	if err != nil {
		return "", err
	}
	b, err := r.mustLookup(to)
	if err != nil {
		return "", err
	}
	return renderInterdiff(a.Files, b.Files, external), nil
}

// Diff implements resolver.Querier
func (r *Repo) Diff(_ context.Context, rev jj.CommitID) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("Diff"); err != nil {
		return "", err
	}

	c, err := r.mustLookup(rev)
	if err != nil {
		return "", err
	}
	return renderInterdiff(nil, c.Files, true), nil
}

// Stack implements resolver.Querier
func (r *Repo) Stack(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("Stack"); err != nil {
		return "", err
	}

	visible := r.visible()
	counts := make(map[jj.ChangeID]int)
	for _, c := range visible {
		counts[c.ChangeID]++
	}
	return renderLog(visible, counts), nil
}

// CurrentOperation implements resolver.Querier
func (r *Repo) CurrentOperation(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("CurrentOperation"); err != nil {
		return "", err
	}

	if len(r.ops) == 0 {
		return "@  000000000000 root()\n", nil
	}
	return fmt.Sprintf("@  %012x %s\n", len(r.ops), r.ops[len(r.ops)-1]), nil
}

// Rebase implements resolver.Mutator
func (r *Repo) Rebase(_ context.Context, root, dest jj.CommitID) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("Rebase"); err != nil {
		return "", err
	}

	if _, err := r.mustLookup(root); err != nil {
		return "", err
	}
	if _, err := r.mustLookup(dest); err != nil {
		return "", err
	}
	children := r.children(root)
	if len(children) == 0 {
		return "", fmt.Errorf("rebase %s+ onto %s: %w", root, dest, jjerrors.ErrEmptyRevisionSet)
	}

	for _, child := range children {
		for i, p := range child.Parents {
			if p == root {
				child.Parents[i] = dest
			}
		}
		r.rewrite(child)
	}
	r.ops = append(r.ops, fmt.Sprintf("rebase -s %s+ -d %s", root, dest))
	return fmt.Sprintf("Rebased %d commits onto destination\n", len(children)), nil
}

// Abandon implements resolver.Mutator. Children move onto the abandoned
// commit's parents.
func (r *Repo) Abandon(_ context.Context, rev jj.CommitID) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("Abandon"); err != nil {
		return "", err
	}

	c, err := r.mustLookup(rev)
	if err != nil {
		return "", err
	}
	r.abandon(c)
	r.ops = append(r.ops, fmt.Sprintf("abandon %s", rev))
	return fmt.Sprintf("Abandoned commit %s %s\n", c.ChangeID, c.CommitID), nil
}

func (r *Repo) abandon(c *Commit) {
	children := r.children(c.CommitID)
	r.abandoned[c.CommitID] = true
	for _, child := range children {
		var parents []jj.CommitID
		for _, p := range child.Parents {
			if p == c.CommitID {
				parents = append(parents, c.Parents...)
				continue
			}
			parents = append(parents, p)
		}
		child.Parents = parents
		r.rewrite(child)
	}
}

// Squash implements resolver.Mutator. The destination keeps its description
// and the source is abandoned.
func (r *Repo) Squash(_ context.Context, from, into jj.CommitID) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("Squash"); err != nil {
		return "", err
	}

	src, err := r.mustLookup(from)
	if err != nil {
		return "", err
	}
	dst, err := r.mustLookup(into)
	if err != nil {
		return "", err
	}

	paths := make([]string, 0, len(src.Files))
	for path := range src.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		dst.Files[path] = src.Files[path]
	}
	dst.Conflicted = dst.Conflicted || src.Conflicted

	r.abandon(src)
	r.rewrite(dst)
	r.ops = append(r.ops, fmt.Sprintf("squash %s into %s", from, into))
	return fmt.Sprintf("Working copy  (@) now at: %s %s\n", dst.ChangeID, dst.CommitID), nil
}
