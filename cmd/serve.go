package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/scoreclean/constants"
	"github.com/jsphweid/scoreclean/db"
	"github.com/jsphweid/scoreclean/engine"
	"github.com/jsphweid/scoreclean/instrument"
	"github.com/jsphweid/scoreclean/midi"
	"github.com/jsphweid/scoreclean/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const maxUploadBytes = 32 << 20

var presetsFromDynamo bool

func init() {
	serveCmd.Flags().BoolVar(&presetsFromDynamo, "dynamo-presets", false, "merge instrument presets from the DynamoDB preset table")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the cleaning API over HTTP",
	Long:  `Serves the cleaning API over HTTP on PORT (default 8080)`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := instrument.Builtin()
		if presetsFromDynamo {
			remote, err := db.GetAllInstrumentPresets()
			if err != nil {
				return err
			}
			log.Info("loaded presets from DynamoDB", zap.Int("count", len(remote)))
			table = table.Merge(remote)
		}
		return serve(table)
	},
}

type server struct {
	presets instrument.Table
	log     *zap.Logger
}

type ctxKey int

const requestIdKey ctxKey = 0

func requestId(r *http.Request) string {
	id, _ := r.Context().Value(requestIdKey).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIdKey, id)))

		s.log.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func statusFor(err error) int {
	if errors.Is(err, engine.ErrInvalidNote) || errors.Is(err, engine.ErrDegenerateGrid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *server) preset(name string) model.InstrumentPreset {
	if name == "" {
		name = constants.DefaultInstrument
	}
	return s.presets.LookupOrDefault(name)
}

func (s *server) respond(w http.ResponseWriter, r *http.Request, notes []model.RawNoteEvent, preset model.InstrumentPreset, o overrides) {
	res, err := engine.Run(notes, buildOptions(preset, o)...)
	if err != nil {
		s.log.Warn("could not normalize", zap.String("request_id", requestId(r)), zap.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.NormalizeResponse{
		Status:     "success",
		RequestId:  requestId(r),
		Instrument: preset.Name,
		Grid:       o.grid(),
		Notes:      res.Notes,
		Stats:      res.Stats,
	})
}

func (s *server) handleInstruments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.presets.Names())
}

func (s *server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var input model.NormalizeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not parse request body: "+err.Error())
		return
	}

	o := overrides{
		Simplify:   input.Simplify,
		Transpose:  input.Transpose,
		Monophonic: input.Monophonic,
		Grid:       input.Grid,
		PerVoice:   input.PerVoice,
	}
	s.respond(w, r, input.Notes, s.preset(input.Instrument), o)
}

// handleTranscribe takes an uploaded MIDI file in place of pitch detector
// output and cleans it with the chosen instrument preset.
func (s *server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	// a file part with an empty filename is parsed as a plain value
	if _, ok := r.MultipartForm.Value["file"]; ok {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	simplify := true
	if v := r.FormValue("simplify"); v != "" {
		simplify = strings.ToLower(v) == "true"
	}

	parsed, err := midi.Read(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	notes, err := midi.ExtractNotes(parsed)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respond(w, r, notes, s.preset(r.FormValue("instrument")), overrides{Simplify: &simplify})
}

func newRouter(s *server) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/api/instruments", s.handleInstruments).Methods("GET")
	router.HandleFunc("/api/normalize", s.handleNormalize).Methods("POST")
	router.HandleFunc("/api/transcribe", s.handleTranscribe).Methods("POST")
	router.Use(s.logRequests)
	return cors.Default().Handler(router)
}

func serve(table instrument.Table) error {
	s := &server{presets: table, log: log}
	addr := ":" + constants.GetPort()
	log.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, newRouter(s))
}
