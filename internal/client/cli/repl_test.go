package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) LoginWithGoogle(ctx context.Context) error {
	f.loggedIn = true
	return f.record("google")
}
func (f *fakeExec) ForgotPassword(ctx context.Context) error { return f.record("forgot") }
func (f *fakeExec) ResetPassword(ctx context.Context) error  { return f.record("reset") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(ctx context.Context) error        { return f.record("whoami") }
func (f *fakeExec) Expenses(ctx context.Context) error      { return f.record("expenses") }
func (f *fakeExec) AddExpense(ctx context.Context) error    { return f.record("addexpense") }
func (f *fakeExec) EditExpense(ctx context.Context) error   { return f.record("editexpense") }
func (f *fakeExec) DeleteExpense(ctx context.Context) error { return f.record("delexpense") }
func (f *fakeExec) Revenues(ctx context.Context) error      { return f.record("revenues") }
func (f *fakeExec) AddRevenue(ctx context.Context) error    { return f.record("addrevenue") }
func (f *fakeExec) EditRevenue(ctx context.Context) error   { return f.record("editrevenue") }
func (f *fakeExec) DeleteRevenue(ctx context.Context) error { return f.record("delrevenue") }
func (f *fakeExec) Dashboard(ctx context.Context) error     { return f.record("dashboard") }
func (f *fakeExec) Me(ctx context.Context) error            { return f.record("me") }
func (f *fakeExec) UploadAvatar(ctx context.Context) error  { return f.record("avatar") }
func (f *fakeExec) DeleteAvatar(ctx context.Context) error  { return f.record("delavatar") }
func (f *fakeExec) DeleteAccount(ctx context.Context) error { return f.record("delaccount") }

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"expenses",
		"addexpense",
		"dashboard",
		"me",
		"whoami",
		"logout",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "expenses", "addexpense", "dashboard", "me", "whoami", "logout"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_GuardBlocksWhenLoggedOut(t *testing.T) {
	lines := silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"expenses",
		"revenues",
		"dashboard",
		"delaccount",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	if len(exec.calls) != 0 {
		t.Fatalf("guarded commands dispatched while logged out: %v", exec.calls)
	}

	prompts := 0
	for _, l := range *lines {
		if strings.Contains(l, "Please log in first.") {
			prompts++
		}
	}
	if prompts != 4 {
		t.Fatalf("want 4 login prompts, got %d (%v)", prompts, *lines)
	}
}

func TestRunREPL_GuardAllowsAfterLogin(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("login\nexpenses\nexit\n")
	exec := &fakeExec{loggedIn: false}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	want := []string{"login", "expenses"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: %v", exec.calls)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("calls mismatch: %v", exec.calls)
		}
	}
}

func TestRunREPL_Quit(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("quit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
