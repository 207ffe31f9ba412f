package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/soundevents/constants"
	"github.com/jsphweid/soundevents/logger"
	"github.com/jsphweid/soundevents/midi"
	"github.com/jsphweid/soundevents/model"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the conversion over HTTP",
	Long:  `Serves POST /convert on LISTEN_ADDR. The request body is a standard MIDI file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(constants.GetListenAddr())
	},
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func HandleConvert(w http.ResponseWriter, r *http.Request) {
	requestId := uuid.New().String()
	log := logger.Get().WithFields(logrus.Fields{"request": requestId, "remote": r.RemoteAddr})

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxUploadSize))
	if err != nil {
		log.Warnf("Could not read request body: %v", err)
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err)
		return
	}

	out, err := midi.Convert(bytes.NewReader(body))
	if err != nil {
		log.Infof("Rejected midi upload: %v", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	log.WithField("events", len(out.Events)).Info("Converted midi upload")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.ConvertResponse{RequestId: requestId, Output: out})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok")
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/health", handleHealth).Methods("GET")
	return cors.Default().Handler(router)
}

func serve(addr string) error {
	logger.Get().Infof("Listening on %v", addr)
	return http.ListenAndServe(addr, NewRouter())
}
