package cmd

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/matchalign/constants"
	"github.com/jsphweid/matchalign/file"
	"github.com/jsphweid/matchalign/matchfile"
	"github.com/jsphweid/matchalign/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var servedDoc *matchfile.Document

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve FILE",
	Short: "serves",
	Long:  `Serves the queries of one match file as JSON over HTTP on $SERVE_ADDR.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadServeFile(args[0]); err != nil {
			return err
		}
		serve()
		return nil
	},
}

func LoadServeFile(path string) error {
	doc, err := file.Load(path)
	if err != nil {
		return err
	}
	for _, d := range doc.Diagnostics() {
		log.Printf("%v: quarantined %v", path, d)
	}
	servedDoc = doc
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Could not encode response: " + err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func scoreViews(lines []*model.Line) []model.NoteView {
	res := make([]model.NoteView, 0, len(lines))
	for _, l := range lines {
		res = append(res, model.NewScoreNoteView(l.Index, l.Score))
	}
	return res
}

func HandleInfo(w http.ResponseWriter, r *http.Request) {
	attr := mux.Vars(r)["attribute"]
	v, ok := servedDoc.Info(attr)
	if !ok {
		writeError(w, http.StatusNotFound, "no info line for "+attr)
		return
	}
	writeJSON(w, model.InfoResponse{Attribute: attr, Value: v})
}

func HandleNotePairs(w http.ResponseWriter, r *http.Request) {
	res := make([]model.PairView, 0)
	for _, l := range servedDoc.Lines() {
		if l.Kind == model.Pairing {
			res = append(res, model.PairView{
				Score:  model.NewScoreNoteView(l.Index, l.Score),
				Played: model.NewPlayedNoteView(l.Index, l.Played),
			})
		}
	}
	writeJSON(w, res)
}

func HandleTimeSignatures(w http.ResponseWriter, r *http.Request) {
	res := servedDoc.TimeSignatures()
	if res == nil {
		res = []matchfile.TimeSignature{}
	}
	writeJSON(w, res)
}

func HandleVoice(w http.ResponseWriter, r *http.Request) {
	excludeGrace := r.URL.Query().Get("grace") != "true"
	writeJSON(w, scoreViews(servedDoc.HighestVoice(excludeGrace)))
}

func HandleScoreTimes(w http.ResponseWriter, r *http.Request) {
	var input model.ScoreTimesRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not unmarshal request body: "+err.Error())
		return
	}
	res := make([][]model.NoteView, 0, len(input.Times))
	for _, lines := range servedDoc.LinesAtScoreTimes(input.Times) {
		res = append(res, scoreViews(lines))
	}
	writeJSON(w, res)
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/info/{attribute}", HandleInfo).Methods("GET")
	router.HandleFunc("/pairs", HandleNotePairs).Methods("GET")
	router.HandleFunc("/timesignatures", HandleTimeSignatures).Methods("GET")
	router.HandleFunc("/voice", HandleVoice).Methods("GET")
	router.HandleFunc("/at", HandleScoreTimes).Methods("POST")
	return cors.Default().Handler(router)
}

func serve() {
	addr := constants.GetServeAddr()
	log.Printf("serving %v on %v", servedDoc.Name(), addr)
	log.Fatal(http.ListenAndServe(addr, NewRouter()))
}
