// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the note-scaffolding operations for LLM integration via stdio
// transport. Unlike the interactive workflow there is no retry loop here:
// a failed validation is a hard tool error.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/assemble"
	"github.com/starford/ansuz/internal/builder"
	"github.com/starford/ansuz/internal/journal"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/registry"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/validate"
)

// Server wraps the MCP server with the scaffolding tools.
type Server struct {
	mcp        *server.MCPServer
	store      storage.Provider
	journal    *journal.Journal // nil disables recent_notes
	categories *registry.Categories
	types      *registry.NoteTypes
	pipeline   *assemble.Pipeline
	logger     *slog.Logger
}

// New creates a new MCP server with all tools registered. jnl may be nil.
func New(store storage.Provider, jnl *journal.Journal, logger *slog.Logger) *Server {
	s := &Server{
		store:      store,
		journal:    jnl,
		categories: registry.NewCategories(store, logger),
		types:      registry.NewNoteTypes(store, logger),
		pipeline:   assemble.NewPipeline(store, logger),
		logger:     logger,
	}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("list_primary_categories",
		mcp.WithDescription("List the existing primary category notes."),
	), s.listPrimary)

	s.mcp.AddTool(mcp.NewTool("list_secondary_categories",
		mcp.WithDescription("List the existing secondary category notes."),
	), s.listSecondary)

	s.mcp.AddTool(mcp.NewTool("list_note_types",
		mcp.WithDescription("List the note types available for content notes, with their tag symbols."),
	), s.listNoteTypes)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new vault note from the template fragments. "+
			"category is one of: primary, secondary, content. Titles follow the "+
			"vault's file-name rules; validation failures are returned as errors."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the new note (also its file-name stem)")),
		mcp.WithString("category", mcp.Required(), mcp.Description("primary, secondary, or content")),
		mcp.WithString("symbol", mcp.Description("Tag symbol for a primary category (single emoji; default 📝)")),
		mcp.WithString("note_type", mcp.Description("Note type for content notes (default Basic)")),
		mcp.WithString("primary_links", mcp.Description("Comma-separated primary category names to link")),
		mcp.WithString("secondary_links", mcp.Description("Comma-separated secondary category names to link")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("recent_notes",
		mcp.WithDescription("List recently generated notes from the journal."),
	), s.recentNotes)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listPrimary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strings.Join(s.categories.List(models.TopLevel), "\n")), nil
}

func (s *Server) listSecondary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strings.Join(s.categories.List(models.MidLevel), "\n")), nil
}

func (s *Server) listNoteTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types := s.types.List()
	lines := make([]string, len(types))
	for i, t := range types {
		lines[i] = t.DisplayLabel()
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg, errResult := s.buildConfiguration(req, title, category)
	if errResult != nil {
		return errResult, nil
	}

	if verdict := validate.Title(title, cfg.DestinationPath, s.store.Exists); !verdict.Valid {
		return mcp.NewToolResultError("invalid title: " + verdict.Error), nil
	}

	// The pipeline reads the note's timestamps from the store, so the
	// note exists (empty) before assembly, exactly like a relocated draft.
	if err := s.store.Write(cfg.DestinationPath, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	frag, err := s.pipeline.Load(cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	frag.Metadata = s.pipeline.CustomizeMetadata(frag.Metadata, cfg)
	text, err := s.pipeline.Assemble(frag, cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	final := strings.TrimRight(text, " \t\r\n")
	if err := s.store.Write(cfg.DestinationPath, []byte(final+"\n")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("note created via MCP", slog.String("path", cfg.DestinationPath))
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", cfg.DestinationPath)), nil
}

// buildConfiguration assembles a NoteConfiguration from explicit tool
// arguments instead of interactive selection.
func (s *Server) buildConfiguration(req mcp.CallToolRequest, title, category string) (models.NoteConfiguration, *mcp.CallToolResult) {
	cfg := models.NoteConfiguration{Title: title}

	switch category {
	case "primary":
		cfg.Category = models.TopLevel
		symbol := optString(req, "symbol", models.DefaultSymbol)
		if verdict := validate.Symbol(symbol); !verdict.Valid && !verdict.Overridable {
			return cfg, mcp.NewToolResultError("invalid symbol: " + verdict.Error)
		}
		cfg = cfg.WithSymbol(symbol)
	case "secondary":
		cfg.Category = models.MidLevel
		cfg = cfg.WithTopLevelLinks(parseLinks(optString(req, "primary_links", "")))
	case "content":
		cfg.Category = models.Leaf
		typeName := optString(req, "note_type", models.BasicNoteType)
		var noteType *models.NoteType
		for _, t := range s.types.List() {
			if t.Name == typeName {
				noteType = &t
				break
			}
		}
		if noteType == nil {
			return cfg, mcp.NewToolResultError(fmt.Sprintf("unknown note type %q", typeName))
		}
		cfg = cfg.
			WithTopLevelLinks(parseLinks(optString(req, "primary_links", ""))).
			WithMidLevelLinks(parseLinks(optString(req, "secondary_links", ""))).
			WithType(*noteType)
	default:
		return cfg, mcp.NewToolResultError(fmt.Sprintf("unknown category %q", category))
	}

	resolved, err := builder.Resolve(cfg)
	if err != nil {
		return cfg, mcp.NewToolResultError(err.Error())
	}
	return resolved, nil
}

func (s *Server) recentNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.journal == nil {
		return mcp.NewToolResultError("journal is disabled"), nil
	}
	entries, err := s.journal.Recent(20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

// optString returns an optional string argument or its default.
func optString(req mcp.CallToolRequest, key, fallback string) string {
	if v, err := req.RequireString(key); err == nil && v != "" {
		return v
	}
	return fallback
}

// parseLinks splits a comma-separated name list into category links.
func parseLinks(raw string) []models.CategoryLink {
	var out []models.CategoryLink
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, models.CategoryLink{Name: name})
	}
	return out
}
