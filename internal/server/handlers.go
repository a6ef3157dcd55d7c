package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moneymap-dev/moneymap/internal/chart"
	"github.com/moneymap-dev/moneymap/internal/id"
	"github.com/moneymap-dev/moneymap/internal/metrics"
	"github.com/moneymap-dev/moneymap/internal/model"
	"github.com/moneymap-dev/moneymap/internal/state"
	"github.com/moneymap-dev/moneymap/internal/store"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encoding response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, metrics.Compute(s.container.Snapshot()))
}

// --- accounts ---

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.container.Snapshot().Accounts)
}

func (s *Server) handleAddAccount(w http.ResponseWriter, r *http.Request) {
	var a model.Account
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if a.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	a.ID = id.New()
	if err := s.apply("account add", func(doc model.Document) (model.Document, error) {
		return state.AddAccount(doc, a), nil
	}); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if err := s.apply("account delete", func(doc model.Document) (model.Document, error) {
		if _, ok := state.AccountByID(doc, accountID); !ok {
			return doc, errNotFound
		}
		return state.DeleteAccount(doc, accountID), nil
	}); err != nil {
		s.writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- transactions ---

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.container.Snapshot().Transactions)
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var t model.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if t.Date.IsZero() {
		s.writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	t.ID = id.New()
	if err := s.apply("tx add", func(doc model.Document) (model.Document, error) {
		if _, ok := state.AccountByID(doc, t.AccountID); !ok {
			return doc, fmt.Errorf("%w: account %s", errNotFound, t.AccountID)
		}
		return state.AddTransaction(doc, t), nil
	}); err != nil {
		s.writeMutationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "id")
	if err := s.apply("tx delete", func(doc model.Document) (model.Document, error) {
		return state.DeleteTransaction(doc, txID), nil
	}); err != nil {
		s.writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- positions ---

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.container.Snapshot().Positions)
}

func (s *Server) handleAddPosition(w http.ResponseWriter, r *http.Request) {
	var p model.Position
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Symbol == "" {
		s.writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	p.ID = id.New()
	if err := s.apply("position add", func(doc model.Document) (model.Document, error) {
		if _, ok := state.AccountByID(doc, p.AccountID); !ok {
			return doc, fmt.Errorf("%w: account %s", errNotFound, p.AccountID)
		}
		return state.AddPosition(doc, p), nil
	}); err != nil {
		s.writeMutationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePositionPrice(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "id")
	var body struct {
		Price model.Amount `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.apply("position price", func(doc model.Document) (model.Document, error) {
		next, err := state.UpdatePositionPrice(doc, positionID, body.Price)
		if err != nil {
			return doc, fmt.Errorf("%w: %s", errNotFound, positionID)
		}
		return next, nil
	}); err != nil {
		s.writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "id")
	if err := s.apply("position delete", func(doc model.Document) (model.Document, error) {
		return state.DeletePosition(doc, positionID), nil
	}); err != nil {
		s.writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- goals ---

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.container.Snapshot().Goals)
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var g model.Goal
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if g.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	g.ID = id.New()
	if err := s.apply("goal add", func(doc model.Document) (model.Document, error) {
		return state.AddGoal(doc, g), nil
	}); err != nil {
		s.writeMutationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "id")
	if err := s.apply("goal delete", func(doc model.Document) (model.Document, error) {
		return state.DeleteGoal(doc, goalID), nil
	}); err != nil {
		s.writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- settings and targets ---

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.container.Snapshot().Settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.apply("settings update", func(doc model.Document) (model.Document, error) {
		return state.UpdateSettings(doc, settings), nil
	}); err != nil {
		s.writeMutationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleGetTargets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.container.Snapshot().Targets)
}

func (s *Server) handleUpdateTargets(w http.ResponseWriter, r *http.Request) {
	var targets model.Targets
	if err := json.NewDecoder(r.Body).Decode(&targets); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.apply("targets update", func(doc model.Document) (model.Document, error) {
		return state.UpdateTargets(doc, targets), nil
	}); err != nil {
		s.writeMutationError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, targets)
}

// --- export / import ---

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+store.FileName)
	if err := store.Export(w, s.container.Snapshot()); err != nil {
		s.log.Error().Err(err).Msg("export")
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	imported, err := store.Import(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.apply("import", func(doc model.Document) (model.Document, error) {
		return state.Replace(doc, imported), nil
	}); err != nil {
		s.writeMutationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- charts ---

func (s *Server) handleNetWorthChart(w http.ResponseWriter, r *http.Request) {
	doc := s.container.Snapshot()
	valuations := metrics.ComputePositionValuations(doc.Positions, doc.Settings)
	series := metrics.ComputeNetWorthSeries(doc.Transactions, doc.Accounts, valuations, doc.Settings)
	png, err := chart.RenderNetWorth(series, doc.Settings.BaseCurrency)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (s *Server) handleAllocationChart(w http.ResponseWriter, r *http.Request) {
	summary := metrics.Compute(s.container.Snapshot())
	png, err := chart.RenderAllocation(summary.Allocation)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
