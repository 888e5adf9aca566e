package install

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/DonovanMods/modkit/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGame = "palworld"

func newTestInstaller(host Host, configure ...func(*Builder)) *Installer {
	b := NewBuilder(testGame)
	for _, fn := range configure {
		fn(b)
	}
	return b.Build().Configure(host)
}

func copyDestinations(res *domain.InstallResult) []string {
	var out []string
	for _, inst := range res.Instructions {
		if inst.IsCopy() {
			out = append(out, inst.Destination)
		}
	}
	return out
}

func TestTestSupported_NotConfigured(t *testing.T) {
	installer := NewBuilder(testGame).Build()

	res, err := installer.TestSupported(context.Background(), []string{"a.pak"}, testGame)
	require.NoError(t, err)
	assert.False(t, res.Supported)
	assert.Empty(t, res.RequiredFiles)
	assert.False(t, installer.Configured())
}

func TestTestSupported_Base(t *testing.T) {
	installer := newTestInstaller(newScriptedHost())

	tests := []struct {
		name   string
		files  []string
		gameID string
		want   bool
	}{
		{"matching game and pak", []string{"Mod/a.pak"}, testGame, true},
		{"uppercase extension", []string{"Mod/A.PAK"}, testGame, true},
		{"wrong game", []string{"Mod/a.pak"}, "skyrim-se", false},
		{"no mod file", []string{"Mod/a.txt"}, testGame, false},
		{"empty", nil, testGame, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := installer.TestSupported(context.Background(), tt.files, tt.gameID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Supported)
		})
	}
}

func TestTestSupported_ChecksAreAnded(t *testing.T) {
	yes := SupportCheckFunc(func(context.Context, []string, string, State) (domain.SupportedResult, error) {
		return domain.SupportedResult{Supported: true, RequiredFiles: []string{"x"}}, nil
	})
	no := SupportCheckFunc(func(context.Context, []string, string, State) (domain.SupportedResult, error) {
		return domain.SupportedResult{Supported: false}, nil
	})

	allYes := newTestInstaller(newScriptedHost(), func(b *Builder) { b.AddSupportedCheck(yes).AddSupportedCheck(yes) })
	res, err := allYes.TestSupported(context.Background(), []string{"a.pak"}, testGame)
	require.NoError(t, err)
	assert.True(t, res.Supported)

	oneNo := newTestInstaller(newScriptedHost(), func(b *Builder) { b.AddSupportedCheck(yes).AddSupportedCheck(no) })
	res, err = oneNo.TestSupported(context.Background(), []string{"a.pak"}, testGame)
	require.NoError(t, err)
	assert.False(t, res.Supported)
}

func TestTestSupported_RequiredFiles(t *testing.T) {
	check := RequireAny("*.pak")
	files := []string{"Mod/a.pak", "Mod/b.pak", "Mod/readme.txt"}

	lenient := newTestInstaller(newScriptedHost(), func(b *Builder) { b.AddSupportedCheck(check) })
	res, err := lenient.TestSupported(context.Background(), files, testGame)
	require.NoError(t, err)
	assert.True(t, res.Supported)
	assert.Empty(t, res.RequiredFiles, "required files are dropped outside strict mode")

	strict := newTestInstaller(newScriptedHost(), func(b *Builder) {
		b.AddSupportedCheck(check).AddSupportedCheck(check).WithStrictRequiredFiles(true)
	})
	res, err = strict.TestSupported(context.Background(), files, testGame)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mod/a.pak", "Mod/b.pak", "Mod/a.pak", "Mod/b.pak"}, res.RequiredFiles)
}

func TestTestSupported_ChecksRunConcurrently(t *testing.T) {
	var running, peak atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{}, 2)

	slow := SupportCheckFunc(func(ctx context.Context, _ []string, _ string, _ State) (domain.SupportedResult, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		started <- struct{}{}
		<-release
		running.Add(-1)
		return domain.SupportedResult{Supported: true}, nil
	})

	installer := newTestInstaller(newScriptedHost(), func(b *Builder) { b.AddSupportedCheck(slow).AddSupportedCheck(slow) })

	go func() {
		<-started
		<-started
		close(release)
	}()

	res, err := installer.TestSupported(context.Background(), []string{"a.pak"}, testGame)
	require.NoError(t, err)
	assert.True(t, res.Supported)
	assert.Equal(t, int32(2), peak.Load())
}

func TestTestSupported_CheckFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	failing := SupportCheckFunc(func(context.Context, []string, string, State) (domain.SupportedResult, error) {
		return domain.SupportedResult{}, boom
	})

	installer := newTestInstaller(newScriptedHost(), func(b *Builder) { b.AddSupportedCheck(ExcludeFomod()).AddSupportedCheck(failing) })

	_, err := installer.TestSupported(context.Background(), []string{"a.pak"}, testGame)
	assert.ErrorIs(t, err, boom)
}

func TestTestSupported_ChecksSeeHostState(t *testing.T) {
	host := newScriptedHost()
	host.state = State{GameID: testGame, Features: map[string]any{"allow": true}}

	gate := SupportCheckFunc(func(_ context.Context, _ []string, _ string, s State) (domain.SupportedResult, error) {
		return domain.SupportedResult{Supported: s.FeatureEnabled("allow")}, nil
	})

	installer := newTestInstaller(host, func(b *Builder) { b.AddSupportedCheck(gate) })
	res, err := installer.TestSupported(context.Background(), []string{"a.pak"}, testGame)
	require.NoError(t, err)
	assert.True(t, res.Supported)
}

func TestAdvancedInstall_NotConfigured(t *testing.T) {
	installer := NewBuilder(testGame).Build()

	_, err := installer.AdvancedInstall(context.Background(), []string{"a.pak"}, "dest", testGame, nil)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestAdvancedInstall_SingleFile(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  domain.Instruction
	}{
		{"nested", []string{"Archive/", "Archive/Content/", "Archive/Content/Cool.pak"}, domain.Copy("Archive/Content/Cool.pak", "Cool_P.pak")},
		{"top level", []string{"Cool_P.pak"}, domain.Copy("Cool_P.pak", "Cool_P.pak")},
		{"with companions", []string{"Mod/Cool.pak", "Mod/readme.txt", "Other/notes.txt"}, domain.Copy("Mod/Cool.pak", "Cool_P.pak")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newScriptedHost()
			installer := newTestInstaller(host)

			res, err := installer.AdvancedInstall(context.Background(), tt.files, "dest", testGame, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.want, res.Instructions[0])
			assert.Equal(t, 1, countModCopies(res))
			assert.Empty(t, host.prompts)
		})
	}
}

func countModCopies(res *domain.InstallResult) int {
	n := 0
	for _, inst := range res.Instructions {
		if inst.IsCopy() && HasExt(inst.Destination, ".pak") {
			n++
		}
	}
	return n
}

func TestAdvancedInstall_NoRoot(t *testing.T) {
	host := newScriptedHost()
	installer := newTestInstaller(host)

	res, err := installer.AdvancedInstall(context.Background(), []string{"Mod/", "Mod/readme.txt"}, "dest", testGame, nil)
	assert.ErrorIs(t, err, domain.ErrNoReliableRoot)
	assert.Nil(t, res)
	assert.Empty(t, host.prompts)
}

func largeArchive(n int) []string {
	files := make([]string, 0, n)
	for i := range n {
		files = append(files, fmt.Sprintf("Mod/file%03d.pak", i))
	}
	return files
}

func TestAdvancedInstall_LargeModCancel(t *testing.T) {
	host := newScriptedHost(answer(ActionCancel))
	installer := newTestInstaller(host)

	res, err := installer.AdvancedInstall(context.Background(), largeArchive(101), "dest", testGame, nil)
	assert.ErrorIs(t, err, domain.ErrUserCanceled)
	assert.Nil(t, res)
	require.Len(t, host.prompts, 1)
	assert.Equal(t, "Large mod detected!", host.prompts[0].Title)
	assert.Equal(t, []string{ActionCancel, ActionContinue}, host.prompts[0].Actions)
}

func TestAdvancedInstall_LargeModContinue(t *testing.T) {
	// Continue at the size prompt, then keep every file at the file prompt
	host := newScriptedHost(answer(ActionContinue), answer(ActionInstallSelected))
	installer := newTestInstaller(host)

	res, err := installer.AdvancedInstall(context.Background(), largeArchive(101), "dest", testGame, nil)
	require.NoError(t, err)
	assert.Len(t, res.Instructions, 101)
	require.Len(t, host.prompts, 2)
	assert.Len(t, host.prompts[1].Checkboxes, 101)
}

func TestAdvancedInstall_ExactlyLimitDoesNotWarn(t *testing.T) {
	host := newScriptedHost(answer(ActionInstallSelected))
	installer := newTestInstaller(host)

	_, err := installer.AdvancedInstall(context.Background(), largeArchive(100), "dest", testGame, nil)
	require.NoError(t, err)
	require.Len(t, host.prompts, 1)
	assert.Equal(t, "Multiple mod files detected", host.prompts[0].Title)
}

func manyRoots(n int) []string {
	files := make([]string, 0, n)
	for i := range n {
		files = append(files, fmt.Sprintf("Root%02d/mod.pak", i))
	}
	return files
}

func TestAdvancedInstall_RootLimit(t *testing.T) {
	t.Run("over default limit warns", func(t *testing.T) {
		host := newScriptedHost(answer(ActionCancel))
		installer := newTestInstaller(host)

		_, err := installer.AdvancedInstall(context.Background(), manyRoots(10), "dest", testGame, nil)
		assert.ErrorIs(t, err, domain.ErrUserCanceled)
		assert.Equal(t, "Large mod detected!", host.prompts[0].Title)
	})

	t.Run("at limit goes straight to root prompt", func(t *testing.T) {
		host := newScriptedHost(answer(ActionInstallAll))
		installer := newTestInstaller(host)

		res, err := installer.AdvancedInstall(context.Background(), manyRoots(9), "dest", testGame, nil)
		require.NoError(t, err)
		assert.Len(t, res.Instructions, 9)
		require.Len(t, host.prompts, 1)
	})

	t.Run("disabled limit never warns", func(t *testing.T) {
		host := newScriptedHost(answer(ActionInstallAll))
		installer := newTestInstaller(host, func(b *Builder) { b.WithRootWarnLimit(-1) })

		res, err := installer.AdvancedInstall(context.Background(), manyRoots(20), "dest", testGame, nil)
		require.NoError(t, err)
		assert.Len(t, res.Instructions, 20)
		require.Len(t, host.prompts, 1)
	})
}

func TestAdvancedInstall_MultipleRootsInstallAll(t *testing.T) {
	host := newScriptedHost(answer(ActionInstallAll))
	installer := newTestInstaller(host)

	res, err := installer.AdvancedInstall(context.Background(), []string{"modA/file1.pak", "modB/file2.pak"}, "dest", testGame, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.Instruction{
		domain.Copy("modA/file1.pak", "file1_P.pak"),
		domain.Copy("modB/file2.pak", "file2_P.pak"),
	}, res.Instructions)

	require.Len(t, host.prompts, 1)
	p := host.prompts[0]
	assert.Equal(t, DialogQuestion, p.Type)
	assert.Equal(t, []string{ActionCancel, ActionInstallSelected, ActionInstallAll}, p.Actions)
	assert.Equal(t, []Checkbox{
		{ID: "modA", Text: "modA (1 files)"},
		{ID: "modB", Text: "modB (1 files)"},
	}, p.Checkboxes)
	assert.Contains(t, p.Text, "We found 2 mod locations")
}

func TestAdvancedInstall_MultipleRootsCancel(t *testing.T) {
	host := newScriptedHost(answer(ActionCancel))
	installer := newTestInstaller(host)

	res, err := installer.AdvancedInstall(context.Background(), []string{"modA/file1.pak", "modB/file2.pak"}, "dest", testGame, nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrUserCanceled)
	assert.ErrorIs(t, err, domain.ErrMultipleModPaths)
}

func TestAdvancedInstall_MultipleRootsSelected(t *testing.T) {
	files := []string{"modA/file1.pak", "modA/a.txt", "modB/file2.pak", "modC/file3.pak"}
	host := newScriptedHost(answerWith(ActionInstallSelected, "modC", "modA"))
	installer := newTestInstaller(host)

	res, err := installer.AdvancedInstall(context.Background(), files, "dest", testGame, nil)
	require.NoError(t, err)

	// Selected roots are installed in prompt order
	assert.Equal(t, []domain.Instruction{
		domain.Copy("modA/file1.pak", "file1_P.pak"),
		domain.Copy("modA/a.txt", "a.txt"),
		domain.Copy("modC/file3.pak", "file3_P.pak"),
	}, res.Instructions)
	assert.Len(t, host.prompts, 1)
}

func TestAdvancedInstall_MultipleRootsSelectedNone(t *testing.T) {
	host := newScriptedHost(answerWith(ActionInstallSelected))
	installer := newTestInstaller(host)

	res, err := installer.AdvancedInstall(context.Background(), []string{"modA/file1.pak", "modB/file2.pak"}, "dest", testGame, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Instructions)
	assert.NotNil(t, res.Instructions)
}

func TestAdvancedInstall_MultipleRootsSelectedWithMultipleFiles(t *testing.T) {
	files := []string{
		"modA/one.pak", "modA/two.pak", "modA/notes.txt",
		"modB/three.pak",
		"modC/four.pak",
	}
	host := newScriptedHost(
		answerWith(ActionInstallSelected, "modA", "modB"),
		answerWith(ActionInstallSelected, "modA/two.pak", "modB/three.pak"),
	)
	installer := newTestInstaller(host)

	res, err := installer.AdvancedInstall(context.Background(), files, "dest", testGame, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.Instruction{
		domain.Copy("modA/two.pak", "two_P.pak"),
		domain.Copy("modB/three.pak", "three_P.pak"),
	}, res.Instructions)

	require.Len(t, host.prompts, 2)
	second := host.prompts[1]
	assert.Equal(t, []string{ActionCancel, ActionInstallSelected}, second.Actions)
	require.Len(t, second.Checkboxes, 3)
	for _, cb := range second.Checkboxes {
		assert.True(t, cb.Value, "file checkboxes default to checked")
	}
}

func TestAdvancedInstall_SingleRootMultipleFiles(t *testing.T) {
	files := []string{"Mod/a.pak", "Mod/b.pak", "Mod/c_P.pak"}

	t.Run("install selected", func(t *testing.T) {
		host := newScriptedHost(answerWith(ActionInstallSelected, "Mod/a.pak", "Mod/c_P.pak"))
		installer := newTestInstaller(host)

		res, err := installer.AdvancedInstall(context.Background(), files, "dest", testGame, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a_P.pak", "c_P.pak"}, copyDestinations(res))
		assert.Equal(t, defaultMultipleFiles, host.prompts[0].Text)
	})

	t.Run("cancel", func(t *testing.T) {
		host := newScriptedHost(answer(ActionCancel))
		installer := newTestInstaller(host)

		_, err := installer.AdvancedInstall(context.Background(), files, "dest", testGame, nil)
		assert.ErrorIs(t, err, domain.ErrUserCanceled)
		assert.ErrorIs(t, err, domain.ErrMultipleModPaths)
	})
}

func TestAdvancedInstall_CompatibilityReject(t *testing.T) {
	host := newScriptedHost()
	installer := newTestInstaller(host, func(b *Builder) {
		b.AddCompatibilityTest(CompatibilityTest{
			Test:    func([]string, string) domain.Verdict { return domain.VerdictReject },
			Message: "This mod is for the wrong game version.",
		})
	})

	res, err := installer.AdvancedInstall(context.Background(), []string{"Mod/a.pak"}, "dest", testGame, nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrIncompatibleStructure)
	assert.Contains(t, err.Error(), "This mod is for the wrong game version.")
	assert.Empty(t, host.prompts)
}

func TestAdvancedInstall_CompatibilityRejectDefaultMessage(t *testing.T) {
	installer := newTestInstaller(newScriptedHost(), func(b *Builder) {
		b.AddCompatibilityTest(CompatibilityTest{Test: PatternTest([]string{"*.esp"}, nil)})
	})

	_, err := installer.AdvancedInstall(context.Background(), []string{"Mod/a.pak", "Mod/b.esp"}, "dest", testGame, nil)
	assert.ErrorIs(t, err, domain.ErrIncompatibleStructure)
	assert.Contains(t, err.Error(), defaultRejectMessage)
}

func TestAdvancedInstall_CompatibilityWarning(t *testing.T) {
	warn := CompatibilityTest{
		Test:         func([]string, string) domain.Verdict { return domain.VerdictProceedWithWarning },
		Message:      "This mod looks malformed.",
		ShortMessage: "Malformed mod installed",
	}

	t.Run("continue", func(t *testing.T) {
		host := newScriptedHost(answer(ActionContinueUnsupported))
		installer := newTestInstaller(host, func(b *Builder) { b.AddCompatibilityTest(warn) })

		res, err := installer.AdvancedInstall(context.Background(), []string{"Mod/a.pak"}, "dest", testGame, nil)
		require.NoError(t, err)
		assert.Len(t, res.Instructions, 1)

		require.Len(t, host.prompts, 1)
		assert.Equal(t, DialogError, host.prompts[0].Type)
		assert.Equal(t, "This mod looks malformed.", host.prompts[0].Text)
		require.Len(t, host.notifications, 1)
		assert.Equal(t, NotifyWarning, host.notifications[0].Type)
		assert.Equal(t, "Malformed mod installed", host.notifications[0].Message)
	})

	t.Run("cancel", func(t *testing.T) {
		host := newScriptedHost(answer(ActionCancelInstall))
		installer := newTestInstaller(host, func(b *Builder) { b.AddCompatibilityTest(warn) })

		_, err := installer.AdvancedInstall(context.Background(), []string{"Mod/a.pak"}, "dest", testGame, nil)
		assert.ErrorIs(t, err, domain.ErrIncompatibleStructure)
		assert.NotErrorIs(t, err, domain.ErrUserCanceled)
		assert.Empty(t, host.notifications)
	})

	t.Run("default short message", func(t *testing.T) {
		host := newScriptedHost(answer(ActionContinueUnsupported))
		installer := newTestInstaller(host, func(b *Builder) {
			b.AddCompatibilityTest(CompatibilityTest{Test: warn.Test})
		})

		_, err := installer.AdvancedInstall(context.Background(), []string{"Mod/a.pak"}, "dest", testGame, nil)
		require.NoError(t, err)
		assert.Equal(t, defaultWarnMessage, host.notifications[0].Message)
	})
}

func TestAdvancedInstall_CompatibilityRunsBeforeRootCheck(t *testing.T) {
	installer := newTestInstaller(newScriptedHost(), func(b *Builder) {
		b.AddCompatibilityTest(CompatibilityTest{Test: func([]string, string) domain.Verdict { return domain.VerdictReject }})
	})

	_, err := installer.AdvancedInstall(context.Background(), []string{"readme.txt"}, "dest", testGame, nil)
	assert.ErrorIs(t, err, domain.ErrIncompatibleStructure)
}

func TestAdvancedInstall_Extenders(t *testing.T) {
	host := newScriptedHost()
	host.state = State{Features: map[string]any{"track": true}}

	var seenMod string
	installer := newTestInstaller(host, func(b *Builder) {
		b.AddExtender("first", StaticAttributes(map[string]any{"first": 1}), nil).
			AddExtender("skipped", StaticAttributes(map[string]any{"skipped": true}), func(State) bool { return false }).
			AddExtender("paks", InstalledPaksAttribute(".pak", ""), FeatureEnabled("track")).
			AddExtender("name", func(_ context.Context, _ []domain.Instruction, _ []string, modName string) ([]domain.Instruction, error) {
				seenMod = modName
				return []domain.Instruction{domain.Attribute("last", modName)}, nil
			}, nil)
	})

	res, err := installer.AdvancedInstall(context.Background(), []string{"Mod/Cool.pak"}, "/staging/Cool Mod.installing", testGame, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.Instruction{
		domain.Copy("Mod/Cool.pak", "Cool_P.pak"),
		domain.Attribute("first", 1),
		domain.Attribute("installedPaks", []string{"Cool"}),
		domain.Attribute("last", "Cool Mod"),
	}, res.Instructions)
	assert.Equal(t, "Cool Mod", seenMod)
}

func TestAdvancedInstall_ExtenderSeesOnlySelectedFiles(t *testing.T) {
	host := newScriptedHost(answerWith(ActionInstallSelected, "Mod/b.pak"))
	installer := newTestInstaller(host, func(b *Builder) {
		b.AddExtender("paks", InstalledPaksAttribute(".pak", "paks"), nil)
	})

	res, err := installer.AdvancedInstall(context.Background(), []string{"Mod/a.pak", "Mod/b.pak"}, "dest", testGame, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.Instruction{
		domain.Copy("Mod/b.pak", "b_P.pak"),
		domain.Attribute("paks", []string{"b"}),
	}, res.Instructions)
}

func TestAdvancedInstall_ExtenderError(t *testing.T) {
	boom := errors.New("boom")
	installer := newTestInstaller(newScriptedHost(), func(b *Builder) {
		b.AddExtender("broken", func(context.Context, []domain.Instruction, []string, string) ([]domain.Instruction, error) {
			return nil, boom
		}, nil)
	})

	_, err := installer.AdvancedInstall(context.Background(), []string{"Mod/a.pak"}, "dest", testGame, nil)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "extender broken")
}

func TestAdvancedInstall_PromptError(t *testing.T) {
	host := newScriptedHost()
	host.askErr = context.Canceled
	installer := newTestInstaller(host)

	_, err := installer.AdvancedInstall(context.Background(), []string{"a/1.pak", "b/2.pak"}, "dest", testGame, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdvancedInstall_ReportsProgress(t *testing.T) {
	var reported []float64
	installer := newTestInstaller(newScriptedHost())

	_, err := installer.AdvancedInstall(context.Background(), []string{"Mod/a.pak"}, "dest", testGame, func(p float64) {
		reported = append(reported, p)
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 30, 80, 100}, reported)
}

func TestAdvancedInstall_CustomMessages(t *testing.T) {
	host := newScriptedHost(answer(ActionInstallAll))
	installer := newTestInstaller(host, func(b *Builder) {
		b.UseCustomMessages(Messages{MultipleRoots: RootsTemplate("{count} roots:\n{roots}")})
	})

	_, err := installer.AdvancedInstall(context.Background(), []string{"a/1.pak", "b/2.pak"}, "dest", testGame, nil)
	require.NoError(t, err)
	assert.Equal(t, "2 roots:\na\nb", host.prompts[0].Text)
}

func TestAdvancedInstall_ConcurrentAttemptsAreIndependent(t *testing.T) {
	installer := NewBuilder(testGame).Build()

	done := make(chan *domain.InstallResult, 2)
	for _, files := range [][]string{{"a/1.pak"}, {"b/2.pak"}} {
		go func() {
			res, err := installer.Configure(newScriptedHost()).AdvancedInstall(context.Background(), files, "dest", testGame, nil)
			assert.NoError(t, err)
			done <- res
		}()
	}

	var dests []string
	for range 2 {
		dests = append(dests, copyDestinations(<-done)...)
	}
	assert.ElementsMatch(t, []string{"1_P.pak", "2_P.pak"}, dests)
}
