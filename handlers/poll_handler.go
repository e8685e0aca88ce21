package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"pollsite/helper"
	"pollsite/middleware"
	"pollsite/models"
	"pollsite/services"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollService services.PollService
	Helper      *helper.HTTPHelper
}

func NewPollHandler(pollService services.PollService, h *helper.HTTPHelper) *PollHandler {
	return &PollHandler{pollService: pollService, Helper: h}
}

func (h *PollHandler) questionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.Helper.SendBadRequest(c, "Invalid question ID", h.Helper.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}

func (h *PollHandler) actor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
	}
	return actor, ok
}

// GetQuestions lists the latest published questions.
func (h *PollHandler) GetQuestions(c *gin.Context) {
	var params models.QuestionListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Invalid limit", h.Helper.EmptyJsonMap())
		return
	}
	if !h.Helper.ValidateRequest(c, params) {
		return
	}
	if _, given := c.GetQuery("limit"); given && params.Limit == 0 {
		h.Helper.SendServiceError(c, models.ErrInvalidLimit)
		return
	}

	questions, err := h.pollService.ListQuestions(c.Request.Context(), params.Limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Questions loaded", questions)
}

func (h *PollHandler) GetQuestion(c *gin.Context) {
	id, ok := h.questionID(c)
	if !ok {
		return
	}

	question, err := h.pollService.GetQuestion(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Question loaded", question)
}

func (h *PollHandler) GetResults(c *gin.Context) {
	id, ok := h.questionID(c)
	if !ok {
		return
	}

	results, err := h.pollService.GetResults(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Results loaded", results)
}

// Vote accepts a JSON body or a submitted form. Form submissions are
// redirected to the results page on success.
func (h *PollHandler) Vote(c *gin.Context) {
	id, ok := h.questionID(c)
	if !ok {
		return
	}

	var req models.VoteRequest
	isJSON := c.ContentType() == gin.MIMEJSON
	if isJSON {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			h.Helper.SendBadRequest(c, "Invalid request body", h.Helper.EmptyJsonMap())
			return
		}
	} else if choice, given := c.GetPostForm("choice"); given {
		req.Choice = choice
	}

	result, err := h.pollService.CastVote(c.Request.Context(), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if !isJSON {
		c.Redirect(http.StatusSeeOther, result.ResultsURL)
		return
	}
	h.Helper.SendSuccess(c, "Vote recorded", result)
}

func (h *PollHandler) CreateQuestion(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body", h.Helper.EmptyJsonMap())
		return
	}
	if !h.Helper.ValidateRequest(c, req) {
		return
	}

	question, err := h.pollService.CreateQuestion(c.Request.Context(), req, actor)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Question created", question)
}

func (h *PollHandler) AddChoice(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.questionID(c)
	if !ok {
		return
	}

	var req models.CreateChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body", h.Helper.EmptyJsonMap())
		return
	}
	if !h.Helper.ValidateRequest(c, req) {
		return
	}

	choice, err := h.pollService.AddChoice(c.Request.Context(), id, req, actor)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Choice created", choice)
}

func (h *PollHandler) DeleteQuestion(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.questionID(c)
	if !ok {
		return
	}

	if err := h.pollService.DeleteQuestion(c.Request.Context(), id, actor); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Question deleted", h.Helper.EmptyJsonMap())
}
