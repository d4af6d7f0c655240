package rest

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/calliope-labs/moodtune/internal/core/domain"
)

type recommendRequest struct {
	Text string `json:"text"`
	TopN int    `json:"top_n"`
}

type songResponse struct {
	Title         string   `json:"title"`
	Artist        string   `json:"artist"`
	Similarity    float64  `json:"similarity"`
	MediaURL      *string  `json:"media_url"`
	PreviewURL    *string  `json:"preview_url"`
	MediaEmbedURL *string  `json:"media_embed_url"`
	AlbumImage    *string  `json:"album_image"`
	PreviewEnergy *float64 `json:"preview_energy,omitempty"`
}

type recommendResponse struct {
	ModelVersion     string         `json:"model_version"`
	PredictedEmotion string         `json:"predicted_emotion"`
	Confidence       float64        `json:"confidence"`
	Songs            []songResponse `json:"songs"`
}

// Recommend handles POST /recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Recommend(r.Context(), req.Text, req.TopN)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyQuery):
			writeError(w, http.StatusBadRequest, "no input text provided")
		case errors.Is(err, domain.ErrUnencodable):
			writeError(w, http.StatusBadRequest, "unable to process input text")
		case errors.Is(err, domain.ErrNoCandidates):
			writeError(w, http.StatusUnprocessableEntity, "cannot process request")
		default:
			h.logger.Error().Err(err).Msg("recommendation failed")
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toRecommendResponse(rec))
}

func toRecommendResponse(rec domain.Recommendation) recommendResponse {
	songs := make([]songResponse, len(rec.Songs))
	for i, s := range rec.Songs {
		songs[i] = songResponse{
			Title:         s.Title,
			Artist:        s.Artist,
			Similarity:    s.Similarity,
			MediaURL:      nullable(s.Media.TrackURL),
			PreviewURL:    nullable(s.Media.PreviewURL),
			MediaEmbedURL: nullable(s.Media.VideoEmbedURL),
			AlbumImage:    nullable(s.Media.AlbumImage),
			PreviewEnergy: s.Media.PreviewEnergy,
		}
		if songs[i].MediaURL == nil {
			songs[i].MediaURL = nullable(s.Media.VideoURL)
		}
	}
	return recommendResponse{
		ModelVersion:     rec.ModelVersion,
		PredictedEmotion: string(rec.Emotion),
		Confidence:       rec.Confidence,
		Songs:            songs,
	}
}

// nullable maps the domain's empty-string convention to JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
