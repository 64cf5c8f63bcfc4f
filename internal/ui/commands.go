package ui

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/chromaview/internal/bridge"
	"github.com/five82/chromaview/internal/chroma"
	"github.com/five82/chromaview/internal/explorer"
	"github.com/five82/chromaview/internal/logging"
	"github.com/five82/chromaview/internal/logtail"
	"github.com/five82/chromaview/internal/prefs"
	"github.com/five82/chromaview/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type connectDoneMsg struct {
	params bridge.ConnectParams
	err    error
}

type windowOpenedMsg struct{ url string }

type collectionsMsg struct {
	res bridge.Result[[]chroma.Collection]
}

type detailMsg struct {
	fetch explorer.Fetch
	res   bridge.Result[chroma.Collection]
}

type rowCountMsg struct {
	fetch explorer.Fetch
	res   bridge.Result[int]
}

type recordsMsg struct {
	fetch explorer.Fetch
	res   bridge.Result[[]chroma.Record]
}

type infoMsg struct {
	name string
	res  bridge.Result[chroma.Collection]
}

type createDoneMsg struct {
	res bridge.Result[bool]
}

type deleteDoneMsg struct {
	names []string
	res   bridge.Result[bridge.Void]
}

type resetDoneMsg struct {
	res bridge.Result[bool]
}

type versionMsg struct {
	res bridge.Result[string]
}

type healthMsg struct {
	res bridge.Result[bool]
}

type logLinesMsg struct {
	lines []string
	err   error
}

type clipboardMsg struct {
	chars int
	err   error
}

// flashMsg shows text in the header from a command or modal.
type flashMsg struct {
	text  string
	isErr bool
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func flashCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return flashMsg{text: text, isErr: isErr}
	}
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// connectCmd runs the connect sequence: create_client, health_check and
// check_tenant_and_database, then remembers the connection and asks the
// bridge to open the main window.
func connectCmd(ctx context.Context, b *bridge.Bridge, store *state.Store, p *prefs.Store, params bridge.ConnectParams) tea.Cmd {
	return func() tea.Msg {
		logger := logging.FromContext(ctx)
		resolved, err := bridge.Connect(ctx, b, params)
		if err != nil {
			logger.Warn("connect failed", zap.String("url", resolved.URL), zap.Error(err))
			return connectDoneMsg{params: resolved, err: err}
		}
		if p != nil {
			if err := p.SetLastConnection(resolved.URL, resolved.Tenant, resolved.Database); err != nil {
				logger.Warn("save last connection", zap.Error(err))
			}
		}
		if store != nil {
			store.Dispatch(state.Connected{Endpoint: state.Endpoint{
				URL:      resolved.URL,
				Tenant:   resolved.Tenant,
				Database: resolved.Database,
			}})
		}
		res := bridge.Invoke[bool](ctx, b, bridge.CreateWindow, bridge.Args{"url": resolved.URL})
		if !res.OK() {
			return connectDoneMsg{params: resolved, err: errors.New(res.Err)}
		}
		logger.Info("connected",
			zap.String("url", resolved.URL),
			zap.String("tenant", resolved.Tenant),
			zap.String("database", resolved.Database))
		return connectDoneMsg{params: resolved}
	}
}

func fetchCollectionsCmd(ctx context.Context, b *bridge.Bridge) tea.Cmd {
	return func() tea.Msg {
		return collectionsMsg{res: bridge.Invoke[[]chroma.Collection](ctx, b, bridge.FetchCollections, nil)}
	}
}

// runFetches turns data controller requests into commands.
func runFetches(ctx context.Context, b *bridge.Bridge, fetches ...explorer.Fetch) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(fetches))
	for _, f := range fetches {
		cmds = append(cmds, runFetch(ctx, b, f))
	}
	return tea.Batch(cmds...)
}

func runFetch(ctx context.Context, b *bridge.Bridge, f explorer.Fetch) tea.Cmd {
	return func() tea.Msg {
		switch f.Kind {
		case explorer.FetchDetail:
			return detailMsg{fetch: f, res: bridge.Invoke[chroma.Collection](ctx, b, f.Command(), f.Args())}
		case explorer.FetchRowCount:
			return rowCountMsg{fetch: f, res: bridge.Invoke[int](ctx, b, f.Command(), f.Args())}
		default:
			return recordsMsg{fetch: f, res: bridge.Invoke[[]chroma.Record](ctx, b, f.Command(), f.Args())}
		}
	}
}

func fetchInfoCmd(ctx context.Context, b *bridge.Bridge, name string) tea.Cmd {
	return func() tea.Msg {
		args := bridge.Args{"collectionName": name}
		return infoMsg{name: name, res: bridge.Invoke[chroma.Collection](ctx, b, bridge.FetchCollectionData, args)}
	}
}

func createCollectionCmd(ctx context.Context, b *bridge.Bridge, req explorer.CreateRequest) tea.Cmd {
	return func() tea.Msg {
		return createDoneMsg{res: bridge.Invoke[bool](ctx, b, bridge.CreateCollection, req.Args())}
	}
}

func deleteCollectionsCmd(ctx context.Context, b *bridge.Bridge, names []string) tea.Cmd {
	return func() tea.Msg {
		args := bridge.Args{"collectionNames": names}
		return deleteDoneMsg{names: names, res: bridge.Invoke[bridge.Void](ctx, b, bridge.DeleteCollection, args)}
	}
}

func resetCmd(ctx context.Context, b *bridge.Bridge) tea.Cmd {
	return func() tea.Msg {
		return resetDoneMsg{res: bridge.Invoke[bool](ctx, b, bridge.ResetChroma, nil)}
	}
}

func versionCmd(ctx context.Context, b *bridge.Bridge) tea.Cmd {
	return func() tea.Msg {
		return versionMsg{res: bridge.Invoke[string](ctx, b, bridge.GetChromaVersion, nil)}
	}
}

func healthCmd(ctx context.Context, b *bridge.Bridge) tea.Cmd {
	return func() tea.Msg {
		return healthMsg{res: bridge.Invoke[bool](ctx, b, bridge.HealthCheck, nil)}
	}
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func copyCmd(copyText func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if copyText == nil {
			return clipboardMsg{err: errors.New("clipboard unavailable")}
		}
		if err := copyText(text); err != nil {
			return clipboardMsg{err: err}
		}
		return clipboardMsg{chars: len([]rune(text))}
	}
}

// windowOpener implements bridge.WindowOpener by posting a message to the
// running program.
type windowOpener struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (w *windowOpener) setSend(send func(tea.Msg)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.send = send
}

// OpenWindow switches the program to the main screen for url.
func (w *windowOpener) OpenWindow(url string) error {
	w.mu.Lock()
	send := w.send
	w.mu.Unlock()
	if send == nil {
		return errors.New("terminal is not running")
	}
	send(windowOpenedMsg{url: url})
	return nil
}
