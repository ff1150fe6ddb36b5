package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/queryx/queryd/internal/pattern"
)

type regexRequest struct {
	Pattern string   `json:"pattern"`
	Flags   []string `json:"flags"`
	Text    string   `json:"text"`
}

type substituteRequest struct {
	regexRequest
	Replacement string `json:"replacement"`
	Count       int    `json:"count"`
}

type splitRequest struct {
	regexRequest
	MaxSplit int `json:"maxsplit"`
}

type validateRequest struct {
	Pattern string   `json:"pattern"`
	Flags   []string `json:"flags"`
}

type bulkRequest struct {
	Pattern string   `json:"pattern"`
	Flags   []string `json:"flags"`
	Texts   []string `json:"texts"`
}

type bulkSubstituteRequest struct {
	bulkRequest
	Replacement string `json:"replacement"`
	Count       int    `json:"count"`
}

type bulkSplitRequest struct {
	bulkRequest
	MaxSplit int `json:"maxsplit"`
}

// bindAndFlags deserializes the body and validates flag names; unknown
// names are rejected here, before any compilation.
func bindAndFlags(c *gin.Context, req any, names *[]string) ([]pattern.Flag, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return nil, false
	}
	flags, err := pattern.ParseFlags(*names)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return flags, true
}

func (s *Server) postMatch(c *gin.Context) {
	var req regexRequest
	flags, ok := bindAndFlags(c, &req, &req.Flags)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pattern.FirstMatch(req.Pattern, flags, req.Text))
}

func (s *Server) postFindAll(c *gin.Context) {
	var req regexRequest
	flags, ok := bindAndFlags(c, &req, &req.Flags)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pattern.FindAll(req.Pattern, flags, req.Text))
}

func (s *Server) postSubstitute(c *gin.Context) {
	var req substituteRequest
	flags, ok := bindAndFlags(c, &req, &req.Flags)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pattern.Substitute(req.Pattern, flags, req.Replacement, req.Text, req.Count))
}

func (s *Server) postSplit(c *gin.Context) {
	var req splitRequest
	flags, ok := bindAndFlags(c, &req, &req.Flags)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pattern.Split(req.Pattern, flags, req.Text, req.MaxSplit))
}

func (s *Server) postValidate(c *gin.Context) {
	var req validateRequest
	if _, ok := bindAndFlags(c, &req, &req.Flags); !ok {
		return
	}
	c.JSON(http.StatusOK, pattern.Validate(req.Pattern))
}

func (s *Server) getFlags(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"flags": pattern.AvailableFlags()})
}

func (s *Server) postBulkMatch(c *gin.Context) {
	var req bulkRequest
	flags, ok := bindAndFlags(c, &req, &req.Flags)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pattern.BulkFirstMatch(req.Pattern, flags, req.Texts))
}

func (s *Server) postBulkFindAll(c *gin.Context) {
	var req bulkRequest
	flags, ok := bindAndFlags(c, &req, &req.Flags)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pattern.BulkFindAll(req.Pattern, flags, req.Texts))
}

func (s *Server) postBulkSubstitute(c *gin.Context) {
	var req bulkSubstituteRequest
	flags, ok := bindAndFlags(c, &req, &req.Flags)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pattern.BulkSubstitute(req.Pattern, flags, req.Replacement, req.Texts, req.Count))
}

func (s *Server) postBulkSplit(c *gin.Context) {
	var req bulkSplitRequest
	flags, ok := bindAndFlags(c, &req, &req.Flags)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pattern.BulkSplit(req.Pattern, flags, req.Texts, req.MaxSplit))
}

func (s *Server) getBulkInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"description": "Bulk regex operations applying one compiled pattern across many texts",
		"benefits": []string{
			"Pattern compiled once for all texts",
			"Individual text failures do not stop processing of other texts",
			"Per-text results with success/failure tracking",
			"Aggregated statistics and processing time",
		},
		"operations": []gin.H{
			{"name": "match", "description": "Find first match in each text", "endpoint": "/match"},
			{"name": "findall", "description": "Find all matches in each text", "endpoint": "/findall"},
			{"name": "substitute", "description": "Replace matches in each text", "endpoint": "/substitute"},
			{"name": "split", "description": "Split each text using pattern", "endpoint": "/split"},
		},
	})
}
