package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/queryx/queryd/internal/query"
)

type searchRequest struct {
	JSONData string `json:"json_data"`
	JSONPath string `json:"jsonpath"`
}

type loadAndSearchRequest struct {
	FilePath string `json:"file_path"`
	JSONPath string `json:"jsonpath"`
}

type searchAllRequest struct {
	JSONData  string   `json:"json_data"`
	JSONPaths []string `json:"jsonpaths"`
}

type loadAndSearchAllRequest struct {
	FilePath  string   `json:"file_path"`
	JSONPaths []string `json:"jsonpaths"`
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// resolveDocumentPath confines file loads to the configured document
// root, when one is set. Relative paths resolve against the root.
func (s *Server) resolveDocumentPath(path string) (string, error) {
	if s.cfg.DocumentRoot == "" {
		return path, nil
	}
	root, err := filepath.Abs(s.cfg.DocumentRoot)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	resolved := filepath.Clean(path)
	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes document root: %s", path)
	}
	return resolved, nil
}

func (s *Server) postSearch(c *gin.Context) {
	var req searchRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, query.Search(req.JSONData, req.JSONPath))
}

func (s *Server) postLoadAndSearch(c *gin.Context) {
	var req loadAndSearchRequest
	if !bindJSON(c, &req) {
		return
	}
	resolved, err := s.resolveDocumentPath(req.FilePath)
	if err != nil {
		c.JSON(http.StatusOK, query.LoadAndSearchResponse{
			JSONPath: req.JSONPath,
			FilePath: req.FilePath,
			Error:    err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, query.LoadAndSearch(resolved, req.JSONPath))
}

func (s *Server) postSearchAll(c *gin.Context) {
	var req searchAllRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, query.SearchAll(req.JSONData, req.JSONPaths))
}

func (s *Server) postLoadAndSearchAll(c *gin.Context) {
	var req loadAndSearchAllRequest
	if !bindJSON(c, &req) {
		return
	}
	resolved, err := s.resolveDocumentPath(req.FilePath)
	if err != nil {
		c.JSON(http.StatusOK, query.LoadAndSearchAllResponse{
			FilePath:       req.FilePath,
			TotalJSONPaths: len(req.JSONPaths),
			FailedSearches: len(req.JSONPaths),
			Results:        []query.Result{},
			Error:          err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, query.LoadAndSearchAll(resolved, req.JSONPaths))
}

func (s *Server) getJSONPathInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"description": "JSONPath operations for querying JSON documents",
		"operations": []gin.H{
			{"name": "search", "description": "Search JSON data with a single JSONPath expression", "endpoint": "/search"},
			{"name": "load-and-search", "description": "Load a JSON file and search with a single expression", "endpoint": "/load-and-search"},
			{"name": "search-all", "description": "Search JSON data with multiple expressions", "endpoint": "/search-all"},
			{"name": "load-and-search-all", "description": "Load a JSON file once and search with multiple expressions", "endpoint": "/load-and-search-all"},
		},
		"jsonpath_syntax": gin.H{
			"description": "RFC 9535 JSONPath",
			"examples": []gin.H{
				{"expression": "$", "description": "Root element"},
				{"expression": "$.store.book[*]", "description": "All books in store"},
				{"expression": "$.store.book[0]", "description": "First book"},
				{"expression": "$.store.book[-1]", "description": "Last book"},
				{"expression": "$.store.book[0:2]", "description": "First two books"},
				{"expression": "$..author", "description": "All authors, recursively"},
				{"expression": "$.store.book[?@.price < 10]", "description": "Books cheaper than 10"},
			},
		},
	})
}
