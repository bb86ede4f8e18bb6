// Package whitedew is the application skeleton of the WhiteDew terminal
// editor, built on an arena memory subsystem.
//
// All memory the application touches comes from arenas: two scratch arenas
// for temporary work and one arena per open document. Arenas reserve address
// space up front and commit it in 64 KiB chunks; every committed chunk is
// charged against a single memory budget.
//
// # Quick Start
//
//	app, err := whitedew.New(
//	    whitedew.WithMemoryLimit(256<<20),
//	    whitedew.WithLogger(whitedew.NewTextLogger(slog.LevelDebug)),
//	)
//	if err != nil {
//	    fmt.Fprintln(os.Stderr, whitedew.FormatError(err))
//	    os.Exit(1)
//	}
//	defer app.Close()
//
//	if _, err := app.Open(ctx, "notes.txt"); err != nil {
//	    // ...
//	}
//	err = app.Run(ctx)
//
// # Errors
//
// Errors from App methods are either plain sentinel errors or *Error values
// carrying an application or system error code. FormatError renders both for
// the user; errors.Is and errors.As see through the wrapping.
//
// # Concurrency
//
// An App and its arenas belong to one goroutine.
package whitedew
