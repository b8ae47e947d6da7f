package handler // handler package contains the client account handlers

import (
	"context"  // context bounds storage and publishing calls
	"errors"   // errors matches repository sentinel values
	"net/http" // http provides status code constants
	"strconv"  // strconv parses the account number from the URL

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/client-accounts/internal/model"
	"github.com/iliyamo/client-accounts/internal/queue"
	"github.com/iliyamo/client-accounts/internal/repository"
)

// ClientStore is the persistence the handlers need.  *repository.ClientRepo
// satisfies it.
type ClientStore interface {
	Create(ctx context.Context, c *model.Client) error
	List(ctx context.Context) ([]model.Client, error)
	Update(ctx context.Context, numCompte int64, nom string, solde float64) error
	Delete(ctx context.Context, numCompte int64) error
	Summary(ctx context.Context) (model.BalanceSummary, error)
}

// EventPublisher receives lifecycle events after successful writes.
type EventPublisher interface {
	Publish(ctx context.Context, event queue.ClientEvent) error
}

// ClientHandler serves /client.  It holds no per-request state.
type ClientHandler struct {
	Repo   ClientStore
	Events EventPublisher
	Log    *zap.SugaredLogger
}

// NewClientHandler panics if repo or log is nil.  A nil publisher drops events.
func NewClientHandler(repo ClientStore, events EventPublisher, log *zap.SugaredLogger) *ClientHandler {
	if repo == nil || log == nil {
		panic("nil dependency passed to NewClientHandler")
	}
	return &ClientHandler{Repo: repo, Events: events, Log: log.With("component", "client-handler")}
}

type createClientRequest struct {
	NumCompte int64   `json:"numCompte"`
	Nom       string  `json:"nom"`
	Solde     float64 `json:"solde"`
}

type updateClientRequest struct {
	Nom   string  `json:"nom"`
	Solde float64 `json:"solde"`
}

// CreateClient handles POST /client/.
//
// Zero values count as missing, so a client cannot be opened with a balance
// of exactly 0 or account number 0.
func (h *ClientHandler) CreateClient(c echo.Context) error {
	var body createClientRequest
	if err := c.Bind(&body); err != nil {
		return h.fail(c, validationError(msgInvalidBody))
	}
	if body.NumCompte == 0 || body.Nom == "" || body.Solde == 0 {
		return h.fail(c, validationError(msgCreateMissing))
	}

	ctx := c.Request().Context()
	client := model.Client{NumCompte: body.NumCompte, Nom: body.Nom, Solde: body.Solde}
	if err := h.Repo.Create(ctx, &client); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return h.fail(c, conflictError(msgDuplicate, err))
		}
		return h.fail(c, internalError(msgCreateFailed, err))
	}
	h.publish(ctx, queue.NewClientEvent(queue.ClientCreated, client))

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": msgCreated,
		"client":  client,
	})
}

// ListClients handles GET /client/ and returns a bare array with obs added.
func (h *ClientHandler) ListClients(c echo.Context) error {
	clients, err := h.Repo.List(c.Request().Context())
	if err != nil {
		return h.fail(c, internalError(msgListFailed, err))
	}
	out := make([]model.ObservedClient, 0, len(clients))
	for _, cl := range clients {
		out = append(out, model.Observe(cl))
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateClient handles PUT /client/:numCompte.  The body is validated before
// the key; a key that is not an integer cannot match any row and is reported
// as not found.
func (h *ClientHandler) UpdateClient(c echo.Context) error {
	var body updateClientRequest
	if err := c.Bind(&body); err != nil {
		return h.fail(c, validationError(msgInvalidBody))
	}
	if body.Nom == "" || body.Solde == 0 {
		return h.fail(c, validationError(msgUpdateMissing))
	}
	numCompte, err := strconv.ParseInt(c.Param("numCompte"), 10, 64)
	if err != nil {
		return h.fail(c, notFoundError(msgUpdateNotFound))
	}

	ctx := c.Request().Context()
	if err := h.Repo.Update(ctx, numCompte, body.Nom, body.Solde); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return h.fail(c, notFoundError(msgUpdateNotFound))
		}
		return h.fail(c, internalError(msgUpdateFailed, err))
	}
	h.publish(ctx, queue.NewClientEvent(queue.ClientUpdated, model.Client{NumCompte: numCompte, Nom: body.Nom, Solde: body.Solde}))

	return c.JSON(http.StatusOK, okBody(msgUpdated))
}

// DeleteClient handles DELETE /client/:numCompte.
func (h *ClientHandler) DeleteClient(c echo.Context) error {
	numCompte, err := strconv.ParseInt(c.Param("numCompte"), 10, 64)
	if err != nil {
		return h.fail(c, notFoundError(msgDeleteNotFound))
	}

	ctx := c.Request().Context()
	if err := h.Repo.Delete(ctx, numCompte); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return h.fail(c, notFoundError(msgDeleteNotFound))
		}
		return h.fail(c, internalError(msgDeleteFailed, err))
	}
	h.publish(ctx, queue.NewDeletedEvent(numCompte))

	return c.JSON(http.StatusOK, okBody(msgDeleted))
}

// BalanceSummary handles GET /client/soldeminmax.
func (h *ClientHandler) BalanceSummary(c echo.Context) error {
	summary, err := h.Repo.Summary(c.Request().Context())
	if err != nil {
		return h.fail(c, internalError(msgSummaryFailed, err))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "summary": summary})
}

// publish is best effort: the write has already been committed, so a broker
// failure is logged and the request still succeeds.
func (h *ClientHandler) publish(ctx context.Context, ev queue.ClientEvent) {
	if h.Events == nil {
		return
	}
	if err := h.Events.Publish(context.WithoutCancel(ctx), ev); err != nil {
		h.Log.Warnw("event not published", "type", ev.Type, "numCompte", ev.NumCompte, "error", err)
	}
}
