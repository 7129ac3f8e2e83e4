package router

import (
	"fmt"
	"net/http"

	"github.com/DjordjeVuckovic/monkey-parser/internal/apperr"
	"github.com/DjordjeVuckovic/monkey-parser/internal/ast"
	"github.com/DjordjeVuckovic/monkey-parser/internal/lexer"
	"github.com/DjordjeVuckovic/monkey-parser/internal/parser"
	"github.com/DjordjeVuckovic/monkey-parser/internal/token"
	"github.com/labstack/echo/v4"
)

type SourceRequest struct {
	Source string      `json:"source"`
	Mode   parser.Mode `json:"mode,omitempty"`
}

type TokenizeResponse struct {
	RequestID string        `json:"request_id"`
	Tokens    []token.Token `json:"tokens"`
}

type ParseResponse struct {
	RequestID string        `json:"request_id"`
	Mode      parser.Mode   `json:"mode"`
	Program   string        `json:"program"`
	AST       *ast.DumpNode `json:"ast"`
}

type ParseRouter struct {
	e   *echo.Echo
	cfg *parser.Config
}

func NewParseRouter(e *echo.Echo, cfg *parser.Config) *ParseRouter {
	return &ParseRouter{
		e:   e,
		cfg: cfg,
	}
}

func (r *ParseRouter) Bind() {
	r.e.POST("/tokenize", r.tokenizeHandler)
	r.e.POST("/parse", r.parseHandler)
}

func (r *ParseRouter) tokenizeHandler(c echo.Context) error {
	req, err := r.bindSource(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TokenizeResponse{
		RequestID: requestID(c),
		Tokens:    lexer.Tokenize(req.Source),
	})
}

// parseHandler answers 200 with the tree when the program parsed cleanly and
// 400 with every recorded error otherwise.
func (r *ParseRouter) parseHandler(c echo.Context) error {
	req, err := r.bindSource(c)
	if err != nil {
		return err
	}

	mode := r.cfg.Mode
	if req.Mode != "" {
		mode, err = parser.ParseMode(string(req.Mode))
		if err != nil {
			return apperr.NewValidationWrap("invalid mode", err)
		}
	}

	p := parser.New(lexer.New(req.Source), parser.WithMode(mode))
	program := p.ParseProgram()
	if err := p.Err(); err != nil {
		return fmt.Errorf("parse request %s: %w", requestID(c), err)
	}

	return c.JSON(http.StatusOK, ParseResponse{
		RequestID: requestID(c),
		Mode:      mode,
		Program:   program.String(),
		AST:       ast.Dump(program),
	})
}

func (r *ParseRouter) bindSource(c echo.Context) (*SourceRequest, error) {
	var req SourceRequest
	if err := c.Bind(&req); err != nil {
		return nil, apperr.NewValidationWrap("invalid request body", err)
	}
	if req.Source == "" {
		return nil, apperr.NewValidation("source is required")
	}
	if len(req.Source) > r.cfg.MaxSourceBytes {
		return nil, apperr.NewValidation(fmt.Sprintf("source exceeds %d bytes", r.cfg.MaxSourceBytes))
	}
	return &req, nil
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
