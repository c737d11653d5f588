package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/dialog"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/harness"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/i18n"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/units"
)

// UnitInfo describes a catalog unit.
type UnitInfo struct {
	Name        string    `json:"name"`
	Kind        unit.Kind `json:"kind"`
	Description string    `json:"description"`
}

// RunResponse is the data of a successful run.
type RunResponse struct {
	Unit   string      `json:"unit"`
	Result unit.Result `json:"result"`
}

// EvalRequest is the body of POST /eval.
type EvalRequest struct {
	Name   string      `json:"name,omitempty"`
	Kind   unit.Kind   `json:"kind,omitempty"`
	Lang   string      `json:"lang,omitempty"`
	Source string      `json:"source"`
	Params unit.Params `json:"params,omitempty"`
}

func (a *API) catalogReady(context.Context) error {
	if a.catalog.Len() == 0 {
		return errors.New("catalog is empty")
	}
	return nil
}

func (a *API) listUnits(w http.ResponseWriter, r *http.Request) {
	list := a.catalog.List()
	if k := r.URL.Query().Get("kind"); k != "" {
		kind, err := unit.ParseKind(k)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Envelope{Error: &ErrorDetail{Code: CodeInvalidJSON, Message: err.Error()}})
			return
		}
		list = a.catalog.ListKind(kind)
	}

	out := make([]UnitInfo, 0, len(list))
	for _, u := range list {
		out = append(out, UnitInfo{Name: u.Name, Kind: u.Kind, Description: u.Description})
	}
	writeJSON(w, http.StatusOK, Envelope{Data: out, Meta: map[string]any{"count": len(out)}})
}

// runUnit serves POST /units/{name}/run. Catalog names contain slashes, so
// the name is everything between /units/ and the trailing /run.
func (a *API) runUnit(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "*"), "/run")
	if !ok {
		http.NotFound(w, r)
		return
	}
	hd, ok := a.handles[name]
	if !ok {
		a.writeError(w, r, fmt.Errorf("%w: %s", units.ErrUnknownUnit, name))
		return
	}

	var params unit.Params
	if err := decode(r, &params); err != nil {
		a.writeError(w, r, err)
		return
	}
	a.run(w, r, hd, params)
}

func (a *API) eval(w http.ResponseWriter, r *http.Request) {
	if !a.allowEval {
		a.writeError(w, r, ErrEvalDisabled)
		return
	}

	var req EvalRequest
	if err := decode(r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Source) == "" {
		a.writeError(w, r, ErrMissingCode)
		return
	}
	lang, err := harness.ParseLang(req.Lang)
	if err != nil {
		a.writeError(w, r, &harness.LoadError{Unit: req.Name, Err: err})
		return
	}

	hd, err := a.h.Load(harness.Source{Name: req.Name, Kind: req.Kind, Lang: lang, Text: req.Source})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.run(w, r, hd, req.Params)
}

func (a *API) run(w http.ResponseWriter, r *http.Request, hd *harness.Handle, params unit.Params) {
	ctx := r.Context()
	params = dialog.Params(ctx, params)
	if locale := i18n.GetLocale(ctx); locale != "" && !params.Has(unit.KeyLocale) {
		params = params.Clone()
		params[unit.KeyLocale] = locale
	}

	res, err := a.h.Run(ctx, hd, params)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Data: RunResponse{Unit: hd.Name, Result: res}})
}
