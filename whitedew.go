package whitedew

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hupe1980/whitedew/internal/arena"
	"github.com/hupe1980/whitedew/internal/document"
	"github.com/hupe1980/whitedew/internal/fs"
	"github.com/hupe1980/whitedew/internal/locale"
	"github.com/hupe1980/whitedew/internal/resource"
	"github.com/hupe1980/whitedew/internal/scratch"
)

// Document is an open file. Its text stays valid until the App is closed.
type Document = document.Document

// DefaultLanguage is used when no preferred language is supported.
const DefaultLanguage = "en"

var welcome = map[string]string{
	"en":    "Welcome, WhiteDew!",
	"de":    "Willkommen, WhiteDew!",
	"fr":    "Bienvenue, WhiteDew !",
	"es":    "¡Bienvenido, WhiteDew!",
	"pt-BR": "Bem-vindo, WhiteDew!",
	"ko":    "환영합니다, WhiteDew!",
}

// SupportedLanguages lists the languages the welcome banner is translated to.
func SupportedLanguages() []string {
	return []string{"en", "de", "fr", "es", "pt-BR", "ko"}
}

// App is the application skeleton: a scratch pool for temporary memory, a
// memory budget shared by every arena, and the open documents.
//
// An App is not safe for concurrent use.
type App struct {
	pool *scratch.Pool
	rc   *resource.Controller
	docs *document.Manager

	out       io.Writer
	lookupEnv func(string) (string, bool)
	logger    *Logger
	closed    bool
}

// New initializes the scratch pool and the memory budget.
//
// An error is returned when either scratch arena cannot be reserved.
func New(optFns ...Option) (*App, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   opts.memoryLimit,
		IOLimitBytesPerSec: opts.outputRateLimit,
	})

	arenaOpts := []arena.Option{
		arena.WithBackend(opts.backend.arena()),
		arena.WithPoison(opts.poison),
		arena.WithMemoryAcquirer(rc),
		arena.WithLogger(opts.logger.Logger),
	}

	pool, err := scratch.NewPool(opts.scratchCapacity, arenaOpts...)
	if err != nil {
		return nil, translateError(err)
	}

	return &App{
		pool: pool,
		rc:   rc,
		docs: document.NewManager(
			document.WithArenaCapacity(opts.documentCapacity),
			document.WithArenaOptions(arenaOpts...),
			document.WithLogger(opts.logger.Logger),
		),
		out:       opts.output,
		lookupEnv: opts.lookupEnv,
		logger:    opts.logger,
	}, nil
}

// Run writes the welcome banner in the user's language, the detected
// language preferences and a summary of the open documents.
//
// All text is formatted in scratch memory that is released before Run
// returns. Output honors the configured rate limit and ctx.
func (app *App) Run(ctx context.Context) error {
	if app.closed {
		return translateError(ErrClosed)
	}

	out := resource.NewRateLimitedWriter(ctx, app.out, app.rc)
	lang := DefaultLanguage

	err := app.pool.With(nil, func(s *scratch.Scratch) error {
		langs, err := locale.PreferredLanguages(s, app.lookupEnv)
		if err != nil {
			return err
		}
		lang = locale.Negotiate(langs, SupportedLanguages(), DefaultLanguage)

		msg, err := app.banner(s, lang, langs)
		if err != nil {
			return err
		}
		_, err = out.Write(msg.Bytes())
		return err
	})
	if err != nil {
		app.logAllocFailure(ctx, "run", err)
	}

	app.logger.LogStartup(ctx, lang, err)
	return translateError(err)
}

func (app *App) banner(a arena.Allocator, lang string, langs []*arena.String) (*arena.String, error) {
	msg, err := arena.Sprintf(a, "%s\n", welcome[lang])
	if err != nil {
		return nil, err
	}

	if len(langs) > 0 {
		if err := msg.PushString("languages:"); err != nil {
			return nil, err
		}
		for _, l := range langs {
			if err := msg.PushRune(' '); err != nil {
				return nil, err
			}
			if err := msg.PushString(l.String()); err != nil {
				return nil, err
			}
		}
		if err := msg.PushRune('\n'); err != nil {
			return nil, err
		}
	}

	for i := range app.docs.Len() {
		d, _ := app.docs.Get(i)
		if _, err := fmt.Fprintf(msg, "%s: %d lines, %d bytes\n", filepath.Base(d.Path()), d.LineCount(), d.Size()); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// Open loads the file at path into its own arena.
func (app *App) Open(ctx context.Context, path string) (*Document, error) {
	if app.closed {
		return nil, translateError(ErrClosed)
	}

	doc, err := app.docs.AddFile(path)
	if err != nil {
		app.logAllocFailure(ctx, "open", err)
		app.logger.LogOpen(ctx, path, 0, err)
		return nil, translateError(err)
	}

	app.logger.LogOpen(ctx, path, doc.LineCount(), nil)
	return doc, nil
}

// Save writes the i-th open document to path, replacing the file
// atomically. The extension picks the container: .gz, .zst and .lz4 are
// compressed, anything else is written as plain text.
func (app *App) Save(ctx context.Context, i int, path string) error {
	if app.closed {
		return translateError(ErrClosed)
	}

	doc, ok := app.docs.Get(i)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoDocument, i)
	}

	err := doc.Save(fs.Default, path)
	app.logger.LogSave(ctx, path, doc.Size(), err)
	return translateError(err)
}

// Documents returns the open documents in the order they were opened.
func (app *App) Documents() []*Document {
	docs := make([]*Document, 0, app.docs.Len())
	for i := range app.docs.Len() {
		d, _ := app.docs.Get(i)
		docs = append(docs, d)
	}
	return docs
}

// Stats returns a snapshot of memory use.
func (app *App) Stats() Stats {
	s := Stats{
		Scratch:     app.pool.Stats(),
		MemoryUsage: app.rc.MemoryUsage(),
		MemoryPeak:  app.rc.MemoryPeak(),
		MemoryLimit: app.rc.MemoryLimit(),
		Documents:   app.docs.Len(),
	}
	for i := range app.docs.Len() {
		d, _ := app.docs.Get(i)
		s.DocumentBytes += d.Size()
	}
	return s
}

// Close releases the documents and the scratch pool. Close is idempotent.
func (app *App) Close() error {
	if app == nil || app.closed {
		return nil
	}
	app.closed = true

	n := app.docs.Len()
	err := translateError(errors.Join(app.docs.Close(), app.pool.Close()))

	app.logger.LogShutdown(context.Background(), n, err)
	return err
}

func (app *App) logAllocFailure(ctx context.Context, op string, err error) {
	if !errors.Is(err, arena.ErrAllocationFailed) {
		return
	}
	st := app.pool.Stats()
	app.logger.LogAllocFailure(ctx, op, st[0])
}
