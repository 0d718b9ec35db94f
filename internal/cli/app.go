// Package cli is the terminal front end. It turns typed commands into workspace
// actions and prints their results.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"docassist/internal/corpus"
	"docassist/internal/dto"
	"docassist/internal/pkg/logger"
	"docassist/internal/report"
	"docassist/internal/session"
	"docassist/internal/workspace"

	"github.com/fatih/color"
)

const (
	moduleName = "CLI"
	logsLimit  = 20

	pickFilesMessage = "Pick at least one file."
)

var helpText = []string{
	"/docs                         list indexed documents",
	"/upload <path> [path...]      upload and index local files",
	"/drive                        ingest the configured Drive folder",
	"/delete <id|name>             delete one document",
	"/clear-docs                   delete every document and end the chat",
	"/clear-chat                   clear this conversation",
	"/history                      show the conversation so far",
	"/report [--summary] <titles>  build a report, titles separated by commas",
	"/download [path]              save the last report",
	"/health                       check the service",
	"/logs [LEVEL]                 show recent client log entries",
	"/quit                         exit",
	"anything else is sent as a chat message",
}

type App struct {
	ws      *workspace.Workspace
	console *Console
	logger  logger.ILogger

	// Hyperlinks switches citation links between OSC 8 escapes and plain "<url>" text.
	Hyperlinks bool

	title   func(a ...interface{}) string
	you     func(a ...interface{}) string
	bot     func(a ...interface{}) string
	info    func(a ...interface{}) string
	warning func(a ...interface{}) string
	failure func(a ...interface{}) string
}

func NewApp(ws *workspace.Workspace, console *Console, log logger.ILogger) *App {
	return &App{
		ws:         ws,
		console:    console,
		logger:     log,
		Hyperlinks: !color.NoColor,
		title:      color.New(color.FgGreen, color.Bold).SprintFunc(),
		you:        color.New(color.FgGreen, color.Bold).SprintFunc(),
		bot:        color.New(color.FgCyan, color.Bold).SprintFunc(),
		info:       color.New(color.FgHiBlack).SprintFunc(),
		warning:    color.New(color.FgYellow).SprintFunc(),
		failure:    color.New(color.FgRed).SprintFunc(),
	}
}

// Run prints the startup state and then reads commands until /quit, end of input
// or ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	a.console.Println(a.title("Document Assistant"))
	health, docs, err := a.ws.Start(ctx)
	a.printHealth(health)
	if err != nil {
		a.fail(err)
	} else {
		a.console.Println("Documents:")
		a.console.Println(DocumentBlock(docs))
	}
	a.console.Println(a.info("Type /help for commands."))
	a.console.Println()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := a.console.ReadLine(a.you("You: "))
		if !ok {
			if err := a.console.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}
		if quit := a.Handle(ctx, line); quit {
			return nil
		}
	}
}

// Handle executes one input line and reports whether the user asked to quit.
func (a *App) Handle(ctx context.Context, line string) bool {
	name, args := parseCommand(line)
	switch name {
	case "":
		if args == "" {
			return false
		}
		a.chat(ctx, args)
	case "quit":
		return true
	case "help":
		for _, h := range helpText {
			a.console.Println("  " + h)
		}
	case "health":
		a.printHealth(a.ws.Health(ctx))
	case "docs":
		a.refresh(ctx)
	case "upload":
		a.upload(ctx, strings.Fields(args))
	case "drive":
		a.console.Println(a.info("Pulling from Drive..."))
		n, err := a.ws.IngestDrive(ctx)
		if err != nil {
			a.fail(err)
			return false
		}
		a.console.Printf("Ingested %d file(s).\n", n)
		a.console.Println(DocumentBlock(a.ws.Documents()))
	case "delete":
		a.delete(ctx, args)
	case "clear-docs":
		cleared, err := a.ws.ClearCorpus(ctx)
		if err != nil {
			a.fail(err)
			return false
		}
		if cleared {
			a.console.Println("All documents cleared.")
			a.console.Println(DocumentBlock(a.ws.Documents()))
		}
	case "clear-chat":
		cleared, err := a.ws.ClearChat(ctx)
		if err != nil {
			a.fail(err)
			return false
		}
		if cleared {
			a.console.Println("Chat cleared.")
		}
	case "history":
		a.console.Println(HistoryBlock(a.ws.Conversation()))
		if b, ok := a.ws.Citations(); ok {
			a.console.Println(CitationLine(b, a.Hyperlinks))
		}
	case "report":
		a.report(ctx, args)
	case "download":
		a.download(ctx, args)
	case "logs":
		a.logs(strings.ToUpper(strings.TrimSpace(args)))
	default:
		a.console.Println(a.warning("Unknown command /" + name + ". Type /help."))
	}
	return false
}

func (a *App) chat(ctx context.Context, message string) {
	a.console.Println(a.info("Thinking..."))
	reply, err := a.ws.Chat(ctx, message)
	if err != nil {
		a.fail(err)
		return
	}
	a.console.Println(a.bot("Assistant: ") + reply.Answer)
	if b, ok := a.ws.Citations(); ok {
		a.console.Println(CitationLine(b, a.Hyperlinks))
	}
	a.console.Println()
}

func (a *App) refresh(ctx context.Context) {
	docs, err := a.ws.RefreshDocuments(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	a.console.Println(DocumentBlock(docs))
}

// upload reads every path before sending anything; one unreadable file aborts the batch.
func (a *App) upload(ctx context.Context, paths []string) {
	files := make([]dto.UploadFile, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			a.fail(fmt.Errorf("read %s: %w", p, err))
			return
		}
		files = append(files, dto.UploadFile{Name: filepath.Base(p), Content: content})
	}

	if len(files) > 0 {
		a.console.Println(a.info("Uploading..."))
	}
	n, err := a.ws.Upload(ctx, files)
	if err != nil {
		a.fail(err)
		return
	}
	a.console.Printf("Uploaded %d file(s).\n", n)
	a.console.Println(DocumentBlock(a.ws.Documents()))
}

func (a *App) delete(ctx context.Context, ref string) {
	if ref == "" {
		a.console.Println(a.warning("Usage: /delete <id|name>"))
		return
	}
	deleted, err := a.ws.DeleteDocument(ctx, ref)
	if err != nil {
		a.fail(err)
		return
	}
	if deleted {
		a.console.Println(DocumentBlock(a.ws.Documents()))
	}
}

func (a *App) report(ctx context.Context, args string) {
	raw, includeSummary := parseReportArgs(args)
	a.console.Println(a.info("Generating report..."))
	link, err := a.ws.GenerateReport(ctx, raw, includeSummary)
	if err != nil {
		a.fail(err)
		return
	}
	if a.Hyperlinks {
		a.console.Println("Report ready: " + hyperlink(link, link))
	} else {
		a.console.Println("Report ready: " + link)
	}
}

func (a *App) download(ctx context.Context, dest string) {
	link := a.ws.LastReport()
	if link == "" {
		a.console.Println(a.warning("No report yet. Use /report first."))
		return
	}
	if dest == "" {
		dest = defaultDownloadName(link)
	}

	f, err := os.Create(dest)
	if err != nil {
		a.fail(err)
		return
	}
	n, err := a.ws.DownloadReport(ctx, link, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dest)
		a.fail(err)
		return
	}
	a.console.Printf("Saved %s (%d bytes).\n", dest, n)
}

func (a *App) logs(level string) {
	entries, err := a.logger.GetLogs(level, logsLimit)
	if err != nil {
		a.fail(err)
		return
	}
	if len(entries) == 0 {
		a.console.Println(a.info("No log entries."))
		return
	}
	for _, e := range entries {
		a.console.Printf("%s %-5s [%s] %s\n", e.Timestamp, e.Level, e.Module, e.Message)
	}
}

func (a *App) printHealth(h workspace.HealthStatus) {
	if !h.Online {
		a.console.Println(a.failure("Service: " + workspace.StatusOffline))
		return
	}
	a.console.Println(a.info("Service: "+h.Status) + "  " + a.info(h.LLM))
}

// fail prints validation failures as guidance and everything else as an error line.
func (a *App) fail(err error) {
	switch {
	case errors.Is(err, session.ErrEmptyMessage):
		return
	case errors.Is(err, corpus.ErrNoFiles):
		a.console.Println(a.warning(pickFilesMessage))
		return
	case errors.Is(err, report.ErrNoSections):
		a.console.Println(a.warning(report.NoSectionsMessage))
		return
	case errors.Is(err, corpus.ErrDocumentNotFound):
		a.console.Println(a.warning(err.Error()))
		return
	}
	a.logger.Error(moduleName, "action failed", map[string]interface{}{"error": err.Error()})
	a.console.Println(a.failure("Error: " + err.Error()))
}

func defaultDownloadName(link string) string {
	if u, err := url.Parse(link); err == nil {
		if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
			if path.Ext(base) == "" {
				base += ".txt"
			}
			return base
		}
	}
	return "report.txt"
}
