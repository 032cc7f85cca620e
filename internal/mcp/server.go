package mcp

import (
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, matcher Matcher, insights Insights, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("ZFit", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("ZFit workout history server. Look up past sets of an exercise, its best set, the closest past exercise to a new one, and training advice."),
	)

	h := newHandlers(ds, matcher, insights, log)

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolGetBestSet, Handler: h.getBestSet},
		server.ServerTool{Tool: toolMatchExercise, Handler: h.matchExercise},
		server.ServerTool{Tool: toolGetExerciseInsights, Handler: h.getExerciseInsights},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resExercises, Handler: h.exercises},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds       DataSource
	matcher  Matcher
	insights Insights
	log      *slog.Logger
	now      func() time.Time
}

func newHandlers(ds DataSource, matcher Matcher, insights Insights, log *slog.Logger) *handlers {
	return &handlers{ds: ds, matcher: matcher, insights: insights, log: log, now: time.Now}
}

// --- Resource definitions ---

var resExercises = mcp.NewResource(
	"zfit://exercises",
	"Exercise Catalog",
	mcp.WithResourceDescription("Every exercise name that appears in past sets, in order of first use"),
	mcp.WithMIMEType("application/json"),
)
