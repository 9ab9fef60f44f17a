package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	exdb "github.com/hakimelghazi/bidbook-core/db"
	"github.com/hakimelghazi/bidbook-core/internal/asset"
	"github.com/hakimelghazi/bidbook-core/internal/config"
	"github.com/hakimelghazi/bidbook-core/internal/engine"
	"github.com/hakimelghazi/bidbook-core/pricefeed"
)

type placeBidRequest struct {
	Amount string `json:"amount"` // settlement asset, decimal string
	Price  string `json:"price"`  // per unit, decimal string
}

type fillBidRequest struct {
	Units []string `json:"units"` // unit ids from the configured collection
}

func main() {
	configPath := flag.String("config", "", "path to yaml config")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	// 1) optional fill history store
	var store *exdb.Store
	if cfg.DatabaseURL != "" {
		pool, err := exdb.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logrus.WithError(err).Fatal("connect postgres")
		}
		defer pool.Close()
		store = exdb.NewStore(pool)
	}

	// 2) book + engine
	book := engine.New(engine.Config{
		Collection: cfg.Collection,
		Settlement: cfg.Settlement,
	}, engine.SystemClock())
	eng := engine.NewEngine(book, 1024, store)
	go eng.Run(ctx)

	// 3) floor feed
	floors := pricefeed.NewFloorCache()
	if cfg.FloorSlug != "" {
		go pricefeed.StartFloorUpdater(ctx, pricefeed.NewCoinGeckoFeed(), floors,
			[]string{cfg.FloorSlug}, cfg.RefreshInterval())
	}

	// 4) router
	r := chi.NewRouter()

	// Hygiene stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(3 * time.Second))

	writeProblem := func(w http.ResponseWriter, r *http.Request, code int, title, detail string) {
		reqID := middleware.GetReqID(r.Context())
		w.Header().Set("Content-Type", "application/problem+json")
		w.Header().Set("X-Request-ID", reqID)
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"title":      title,
			"status":     code,
			"detail":     detail,
			"instance":   r.URL.Path,
			"request_id": reqID,
		})
	}

	writeJSON := func(w http.ResponseWriter, r *http.Request, code int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-ID", middleware.GetReqID(r.Context()))
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(v)
	}

	// POST /bids
	r.Post("/bids", func(w http.ResponseWriter, r *http.Request) {
		var req placeBidRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeProblem(w, r, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}

		amount, price, err := parseBid(req)
		if err != nil {
			writeProblem(w, r, http.StatusBadRequest, "validation_error", err.Error())
			return
		}

		rcpt, placeErr := eng.Place(r.Context(), asset.NewFungible(cfg.Settlement, amount), price)
		if placeErr != nil {
			writeProblem(w, r, statusForBookError(placeErr), "rejected", placeErr.Error())
			return
		}

		w.Header().Set("Location", "/orders/"+rcpt.ID.String())
		writeJSON(w, r, http.StatusCreated, rcpt)
	})

	// POST /fills
	r.Post("/fills", func(w http.ResponseWriter, r *http.Request) {
		var req fillBidRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeProblem(w, r, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		if len(req.Units) == 0 {
			writeProblem(w, r, http.StatusBadRequest, "validation_error", "units required")
			return
		}

		res, fillErr := eng.Fill(r.Context(), asset.NewBatch(cfg.Collection, req.Units))
		if fillErr != nil {
			writeProblem(w, r, statusForBookError(fillErr), "rejected", fillErr.Error())
			return
		}

		writeJSON(w, r, http.StatusOK, toFillResponse(res))
	})

	// GET /book
	r.Get("/book", func(w http.ResponseWriter, r *http.Request) {
		var resp bookResponse
		if err := eng.View(r.Context(), func(b *engine.Book) {
			resp = toBookResponse(b)
		}); err != nil {
			writeProblem(w, r, http.StatusServiceUnavailable, "engine_busy", err.Error())
			return
		}
		writeJSON(w, r, http.StatusOK, resp)
	})

	// GET /orders/{id}
	r.Get("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeProblem(w, r, http.StatusBadRequest, "validation_error", "invalid order id")
			return
		}
		var (
			ord engine.Order
			ok  bool
		)
		if err := eng.View(r.Context(), func(b *engine.Book) {
			ord, ok = b.Order(id)
		}); err != nil {
			writeProblem(w, r, http.StatusServiceUnavailable, "engine_busy", err.Error())
			return
		}
		if !ok {
			writeProblem(w, r, http.StatusNotFound, "not_found", "order not found")
			return
		}
		writeJSON(w, r, http.StatusOK, ord)
	})

	// GET /fills?order_id=...
	r.Get("/fills", func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeProblem(w, r, http.StatusServiceUnavailable, "no_database", "fill history is not configured")
			return
		}
		orderID, err := uuid.Parse(r.URL.Query().Get("order_id"))
		if err != nil {
			writeProblem(w, r, http.StatusBadRequest, "validation_error", "invalid order_id")
			return
		}
		rows, queryErr := store.ListFillsByOrder(r.Context(), orderID)
		if queryErr != nil {
			writeProblem(w, r, http.StatusInternalServerError, "db_error", queryErr.Error())
			return
		}
		writeJSON(w, r, http.StatusOK, rows)
	})

	// GET /floor
	r.Get("/floor", func(w http.ResponseWriter, r *http.Request) {
		floor, ok := floors.Get(cfg.FloorSlug)
		if !ok {
			writeProblem(w, r, http.StatusNotFound, "no_floor", "no floor price cached")
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]any{
			"collection": cfg.FloorSlug,
			"floor_usd":  floor,
		})
	})

	logrus.WithField("addr", cfg.ListenAddr).Info("listening")
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func parseBid(req placeBidRequest) (amount, price decimal.Decimal, err error) {
	req.Amount = strings.TrimSpace(req.Amount)
	req.Price = strings.TrimSpace(req.Price)
	if req.Amount == "" || req.Price == "" {
		return amount, price, errors.New("amount and price are required")
	}
	amount, err = decimal.NewFromString(req.Amount)
	if err != nil {
		return amount, price, errors.New("amount must be a decimal")
	}
	price, err = decimal.NewFromString(req.Price)
	if err != nil {
		return amount, price, errors.New("price must be a decimal")
	}
	return amount, price, nil
}

func statusForBookError(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidPrice),
		errors.Is(err, engine.ErrInvalidAmount),
		errors.Is(err, engine.ErrWrongAsset),
		errors.Is(err, engine.ErrFractionalQuantity),
		errors.Is(err, engine.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrNoLiquidity):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type fillResponse struct {
	Proceeds []proceedsEntry `json:"proceeds"`
	Fills    []engine.Fill   `json:"fills"`
	Leftover []string        `json:"leftover,omitempty"`
}

type proceedsEntry struct {
	Asset  string          `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
}

func toFillResponse(res engine.FillResult) fillResponse {
	out := fillResponse{Fills: res.Fills}
	for _, p := range res.Proceeds {
		out.Proceeds = append(out.Proceeds, proceedsEntry{Asset: p.Asset, Amount: p.Amount})
	}
	if res.Leftover != nil {
		out.Leftover = res.Leftover.Units
	}
	return out
}

type bookResponse struct {
	BestBid  *decimal.Decimal `json:"best_bid"`
	WorstBid *decimal.Decimal `json:"worst_bid"`
	Levels   []levelEntry     `json:"levels"`
}

type levelEntry struct {
	Price  decimal.Decimal `json:"price"`
	Orders int             `json:"orders"`
	Total  decimal.Decimal `json:"total"`
}

func toBookResponse(book *engine.Book) bookResponse {
	var out bookResponse
	if best, ok := book.BestBid(); ok {
		out.BestBid = &best
	}
	if worst, ok := book.WorstBid(); ok {
		out.WorstBid = &worst
	}
	for _, price := range book.Prices() {
		line, ok := book.Line(price)
		if !ok {
			continue
		}
		out.Levels = append(out.Levels, levelEntry{
			Price:  line.Price,
			Orders: line.Count,
			Total:  line.Total,
		})
	}
	return out
}
