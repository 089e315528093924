package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/errors"
	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/stats"
	"github.com/abhisek/certprep/internal/store"
)

type handlers struct {
	manager *Manager
	results store.ResultRepo
}

type optionRequest struct {
	Option string `json:"option" binding:"required"`
}

// navigateRequest accepts either a target ("next", "prev" or a number)
// or an explicit index.
type navigateRequest struct {
	Target string `json:"target"`
	Index  *int   `json:"index"`
}

func (h *handlers) register(api *gin.RouterGroup) {
	api.GET("/exams", h.listExams)

	api.POST("/sessions", h.startSession)
	api.POST("/sessions/resume/:id", h.resumeSession)
	api.GET("/sessions/:id", h.getSession)
	api.DELETE("/sessions/:id", h.discardSession)
	api.POST("/sessions/:id/answer", h.answer)
	api.POST("/sessions/:id/flag", h.flag)
	api.POST("/sessions/:id/strike", h.strike)
	api.POST("/sessions/:id/navigate", h.navigate)
	api.POST("/sessions/:id/review", h.review)
	api.POST("/sessions/:id/submit", h.submit)
	api.POST("/sessions/:id/save", h.save)

	api.GET("/results", h.listResults)
	api.GET("/results/:id", h.getResult)
	api.GET("/dashboard", h.dashboard)
}

// respondError writes the error envelope with the status of its code.
func respondError(c *gin.Context, err error) {
	e := errors.Convert(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(e.HTTPStatusCode(), gin.H{"error": e})
}

func respond(c *gin.Context, status int, v any, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, v)
}

func (h *handlers) listExams(c *gin.Context) {
	all := catalog.All()
	out := make([]ExamView, len(all))
	for i, e := range all {
		out[i] = newExamView(e)
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) startSession(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("%v", err))
		return
	}
	v, err := h.manager.Start(c.Request.Context(), req)
	respond(c, http.StatusCreated, v, err)
}

func (h *handlers) resumeSession(c *gin.Context) {
	v, err := h.manager.Resume(c.Request.Context(), c.Param("id"))
	respond(c, http.StatusOK, v, err)
}

func (h *handlers) getSession(c *gin.Context) {
	v, err := h.manager.Get(c.Param("id"))
	respond(c, http.StatusOK, v, err)
}

func (h *handlers) discardSession(c *gin.Context) {
	if err := h.manager.Discard(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) answer(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("%v", err))
		return
	}
	v, err := h.manager.Answer(c.Param("id"), req.Option)
	respond(c, http.StatusOK, v, err)
}

func (h *handlers) flag(c *gin.Context) {
	v, err := h.manager.Flag(c.Param("id"))
	respond(c, http.StatusOK, v, err)
}

func (h *handlers) strike(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("%v", err))
		return
	}
	v, err := h.manager.Strike(c.Param("id"), req.Option)
	respond(c, http.StatusOK, v, err)
}

func (h *handlers) navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput("%v", err))
		return
	}

	var t exam.Target
	switch {
	case req.Index != nil:
		t = exam.Index(*req.Index)
	case strings.TrimSpace(req.Target) != "":
		var err error
		if t, err = exam.ParseTarget(req.Target); err != nil {
			respondError(c, err)
			return
		}
	default:
		respondError(c, errors.InvalidInput("target or index is required"))
		return
	}

	v, err := h.manager.Navigate(c.Param("id"), t)
	respond(c, http.StatusOK, v, err)
}

func (h *handlers) review(c *gin.Context) {
	v, err := h.manager.Review(c.Param("id"))
	respond(c, http.StatusOK, v, err)
}

func (h *handlers) submit(c *gin.Context) {
	v, err := h.manager.Submit(c.Request.Context(), c.Param("id"))
	respond(c, http.StatusOK, v, err)
}

func (h *handlers) save(c *gin.Context) {
	v, err := h.manager.Save(c.Request.Context(), c.Param("id"))
	respond(c, http.StatusOK, v, err)
}

// examName maps an exam ID or name from a query to the stored exam name.
// Unknown values are passed through so they simply match nothing.
func examName(q string) string {
	if q == "" {
		return ""
	}
	if e, ok := catalog.Lookup(q); ok {
		return e.Name
	}
	return q
}

func (h *handlers) listResults(c *gin.Context) {
	if h.results == nil {
		respondError(c, errors.NotFound("result history is not available"))
		return
	}
	opts := store.QueryOpts{Exam: examName(c.Query("exam"))}
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			respondError(c, errors.InvalidInput("limit must be a non-negative integer, got %q", l))
			return
		}
		opts.Limit = n
	}

	list, err := h.results.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []exam.QuizResult{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) getResult(c *gin.Context) {
	if h.results == nil {
		respondError(c, errors.NotFound("result history is not available"))
		return
	}
	res, err := h.results.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if res == nil {
		respondError(c, errors.NotFound("no result %q", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) dashboard(c *gin.Context) {
	if h.results == nil {
		respondError(c, errors.NotFound("result history is not available"))
		return
	}
	ctx := c.Request.Context()
	name := examName(c.Query("exam"))

	results, err := h.results.List(ctx, store.QueryOpts{Exam: name})
	if err != nil {
		respondError(c, err)
		return
	}
	cats, err := h.results.CategoryStats(ctx, name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.Build(results, cats, name))
}
