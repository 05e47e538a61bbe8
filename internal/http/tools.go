package http

import (
	"encoding/json"
	"net/http"

	"github.com/mindvex/watsonx-relay/internal/observability"
	"go.uber.org/zap"
)

// Tool endpoints called back by the remote agent platform. They are
// fixed-shape placeholders only: no file, git, or search I/O happens here.

func decodeToolRequest(w http.ResponseWriter, r *http.Request) (map[string]string, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	req := map[string]string{}
	if r.Body != nil {
		// Tool callers sometimes send empty bodies; treat them as empty requests.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	return req, true
}

// HandleReadFile is the read-file tool stub.
func (h *Handler) HandleReadFile(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeToolRequest(w, r)
	if !ok {
		return
	}

	path := req["path"]
	observability.FromContext(r.Context()).Info("tool called",
		zap.String("tool", "read-file"), zap.String("path", path))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"path":    path,
		"success": true,
		"content": "// This is a placeholder. File reading requires workspace context.",
		"message": "File read operation placeholder",
	})
}

// HandleWriteFile is the write-file tool stub.
func (h *Handler) HandleWriteFile(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeToolRequest(w, r)
	if !ok {
		return
	}

	path := req["path"]
	observability.FromContext(r.Context()).Info("tool called",
		zap.String("tool", "write-file"), zap.String("path", path))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"path":    path,
		"success": true,
		"message": "File write operation placeholder",
	})
}

// HandleListFiles is the list-files tool stub.
func (h *Handler) HandleListFiles(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeToolRequest(w, r)
	if !ok {
		return
	}

	directory := req["directory"]
	if directory == "" {
		directory = "/"
	}
	observability.FromContext(r.Context()).Info("tool called",
		zap.String("tool", "list-files"), zap.String("directory", directory))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"directory": directory,
		"success":   true,
		"files":     []string{"src/", "package.json", "README.md"},
		"message":   "File listing placeholder",
	})
}

// HandleAnalyzeFile is the analyze-file tool stub.
func (h *Handler) HandleAnalyzeFile(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeToolRequest(w, r)
	if !ok {
		return
	}

	path := req["path"]
	observability.FromContext(r.Context()).Info("tool called",
		zap.String("tool", "analyze-file"), zap.String("path", path))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"path":    path,
		"success": true,
		"issues":  []string{},
		"metrics": map[string]interface{}{
			"lines":      100,
			"functions":  5,
			"complexity": "low",
		},
	})
}

// HandleGitStatus is the git-status tool stub.
func (h *Handler) HandleGitStatus(w http.ResponseWriter, r *http.Request) {
	_, ok := decodeToolRequest(w, r)
	if !ok {
		return
	}

	observability.FromContext(r.Context()).Info("tool called", zap.String("tool", "git-status"))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"branch":  "main",
		"clean":   true,
		"changes": []string{},
		"ahead":   0,
		"behind":  0,
	})
}

// HandleGitCommit is the git-commit tool stub.
func (h *Handler) HandleGitCommit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeToolRequest(w, r)
	if !ok {
		return
	}

	message := req["message"]
	observability.FromContext(r.Context()).Info("tool called",
		zap.String("tool", "git-commit"), zap.String("message", message))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"commitId": "placeholder-commit-id",
		"message":  message,
		"note":     "Git commit placeholder - requires git integration",
	})
}

// HandleGitPush is the git-push tool stub.
func (h *Handler) HandleGitPush(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeToolRequest(w, r)
	if !ok {
		return
	}

	remote := req["remote"]
	if remote == "" {
		remote = "origin"
	}
	branch := req["branch"]
	if branch == "" {
		branch = "main"
	}
	observability.FromContext(r.Context()).Info("tool called",
		zap.String("tool", "git-push"),
		zap.String("remote", remote),
		zap.String("branch", branch))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"remote":  remote,
		"branch":  branch,
		"note":    "Git push placeholder - requires git integration",
	})
}

// HandleSearchCode is the search-code tool stub.
func (h *Handler) HandleSearchCode(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeToolRequest(w, r)
	if !ok {
		return
	}

	query := req["query"]
	observability.FromContext(r.Context()).Info("tool called",
		zap.String("tool", "search-code"), zap.String("query", query))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"success": true,
		"matches": []map[string]interface{}{
			{"file": "src/index.ts", "line": 10, "content": "// matching line"},
		},
	})
}
