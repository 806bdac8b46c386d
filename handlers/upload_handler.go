package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const maxUploadSize = 10 << 20 // 10 MiB

// UploadImage handles receiving an image and relaying it to the upload
// host. The multipart field name doubles as the model field it fills.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.Uploader == nil {
		h.ErrorHdlr.HandleInternalError(w, "Upload service not configured")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "No file uploaded!")
		return
	}

	file, header, err := r.FormFile("imageUrl")
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "No file uploaded!")
		return
	}
	defer file.Close()

	fileURL, err := h.Uploader.Upload(r.Context(), file, header.Filename)
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("image upload failed")
		h.ErrorHdlr.HandleInternalError(w, "Error uploading file")
		return
	}

	h.ResponseHdlr.JSON(w, http.StatusOK, map[string]string{"fileUrl": fileURL})
}
