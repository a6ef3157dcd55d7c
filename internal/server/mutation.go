package server

import (
	"errors"
	"net/http"

	"github.com/moneymap-dev/moneymap/internal/model"
)

var errNotFound = errors.New("not found")

// apply runs a patch through the container and fires the mutation hook on
// success.
func (s *Server) apply(action string, patch func(model.Document) (model.Document, error)) error {
	if err := s.container.Apply(patch); err != nil {
		return err
	}
	s.log.Info().Str("action", action).Msg("applied")
	s.mutated(action)
	return nil
}

func (s *Server) writeMutationError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNotFound) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeError(w, http.StatusInternalServerError, err.Error())
}
