package benchapi

import (
	"errors"
	"fmt"
	"math"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/tensorplex-labs/rampart/internal/config"
	"github.com/tensorplex-labs/rampart/internal/prediction"
	"github.com/tensorplex-labs/rampart/internal/scoring"
)

// Server wires the scorers into a fiber application.
type Server struct {
	App     *fiber.App
	cfg     *config.ServerEnvConfig
	binned  scoring.ScoreType
	mixture scoring.ScoreType
	ratioB  scoring.ScoreType
	ratioM  scoring.ScoreType
}

// NewServer builds the scoring API from environment configuration. Every
// scorer is constructed once here; requests only read them.
func NewServer(serverCfg *config.ServerEnvConfig, scoringCfg *config.ScoringEnvConfig) (*Server, error) {
	if serverCfg == nil || scoringCfg == nil {
		return nil, fmt.Errorf("server configuration cannot be nil")
	}

	app := fiber.New(fiber.Config{
		Prefork:      false,
		ErrorHandler: fiberErrHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		BodyLimit:    serverCfg.BodySizeLimit,
	})

	app.Use(recover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(ZstdRequestMiddleware([]string{"/health"}))

	floor := scoring.WithFloor(scoringCfg.WorstLogLikelihood)
	tol := scoring.WithWeightTolerance(scoringCfg.WeightTolerance)
	s := &Server{
		App:     app,
		cfg:     serverCfg,
		binned:  scoring.NewNegLogLikelihoodBinned(scoringCfg.NBins, floor),
		mixture: scoring.NewNegLogLikelihoodMixture(scoringCfg.MaxGauss, floor, tol),
		ratioB:  scoring.NewLikelihoodRatioBinned(scoringCfg.NBins, floor),
		ratioM:  scoring.NewLikelihoodRatioMixture(scoringCfg.MaxGauss, floor, tol),
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(Response[string]{Success: true, Data: "ok"})
	})
	app.Post("/score/binned", s.handleScore(s.binned))
	app.Post("/score/mixture", s.handleScore(s.mixture))
	app.Post("/score/ratio", s.handleRatio)
	app.Post("/combine", s.handleCombine)

	return s, nil
}

// Listen serves until the listener fails.
func (s *Server) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Address, s.cfg.Port)
	log.Info().Str("addr", addr).Msg("scoring API listening")
	return s.App.Listen(addr)
}

func (s *Server) handleScore(scorer scoring.ScoreType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return runScore(c, scorer, req)
	}
}

// handleRatio scores with the likelihood ratio; the wrapped likelihood
// variant is selected by the `base` query parameter (binned by default).
func (s *Server) handleRatio(c *fiber.Ctx) error {
	var req ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	scorer := s.ratioB
	switch base := c.Query("base", "binned"); base {
	case "binned":
	case "mixture":
		scorer = s.ratioM
	default:
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown base scorer %q", base))
	}
	return runScore(c, scorer, req)
}

func runScore(c *fiber.Ctx, scorer scoring.ScoreType, req ScoreRequest) error {
	yTrue, err := denseFromRows(req.GroundTruth)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("ground_truth: %s", err))
	}
	yPred, err := denseFromRows(req.Prediction)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("prediction: %s", err))
	}

	score, err := scorer.Score(yTrue, yPred)
	if err != nil {
		return scoreError(c, err)
	}

	desc := scorer.Describe()
	return c.JSON(Response[ScoreResult]{Success: true, Data: ScoreResult{
		Name:             desc.Name,
		Score:            score,
		Precision:        desc.Precision,
		IsLowerTheBetter: desc.IsLowerTheBetter,
		Minimum:          finiteOrNil(desc.Minimum),
		Maximum:          finiteOrNil(desc.Maximum),
	}})
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (s *Server) handleCombine(c *fiber.Ctx) error {
	var req CombineRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	maker, err := prediction.NewMaker(prediction.KindRanking, []string{"score", "rest"})
	if err != nil {
		return err
	}
	rankings := make([]*prediction.Ranking, 0, len(req.Predictions))
	for i, rows := range req.Predictions {
		arr, err := denseFromRows(rows)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("predictions[%d]: %s", i, err))
		}
		p, err := maker.FromArray(arr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("predictions[%d]: %s", i, err))
		}
		rankings = append(rankings, p.(*prediction.Ranking))
	}

	combined, err := prediction.Combine(rankings, req.Indices)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(Response[CombineResult]{Success: true, Data: CombineResult{
		Prediction: rowsFromDense(combined.Array()),
	}})
}

// scoreError maps the scoring error taxonomy onto HTTP statuses: decode
// and precondition failures are the caller's defect (422), anything else
// is ours (500).
func scoreError(c *fiber.Ctx, err error) error {
	var malformed *scoring.MalformedPredictionError
	var precondition *scoring.PreconditionViolationError
	if errors.As(err, &malformed) || errors.As(err, &precondition) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

func fiberErrHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	log.Debug().Err(err).Int("status", code).Msg("request failed")
	return ctx.Status(code).JSON(Response[struct{}]{Success: false, Error: err.Error()})
}

func denseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty array")
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("empty rows")
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("ragged array: row %d has %d value(s), want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

func rowsFromDense(m *mat.Dense) [][]float64 {
	nRows, nCols := m.Dims()
	rows := make([][]float64, nRows)
	for i := range nRows {
		row := make([]float64, nCols)
		copy(row, m.RawRowView(i))
		rows[i] = row
	}
	return rows
}
