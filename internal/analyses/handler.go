package analyses

import (
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"proposal-analyzer/internal/extract"
	"proposal-analyzer/internal/queue"
	"proposal-analyzer/internal/scoring"
	"proposal-analyzer/internal/shared/server/respond"
	"proposal-analyzer/internal/shared/storage/object"
	"proposal-analyzer/internal/shared/telemetry"
)

const messageVersion = 1

// Handler wires HTTP handlers to the analysis service. When a queue client
// is configured, accepted requests are staged and enqueued for the worker;
// otherwise they run in-process.
type Handler struct {
	Svc            *Service
	Store          object.ObjectStore
	Queue          queue.Client
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, store object.ObjectStore, queueClient queue.Client, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, Store: store, Queue: queueClient, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-proposal-async", h.analyzeAsync)
	rg.POST("/analyze-proposal-batch", h.analyzeBatch)
	rg.GET("/stats", h.stats)
}

func (h *Handler) analyzeAsync(c *gin.Context) {
	proposalID := strings.TrimSpace(c.PostForm("proposal_id"))
	if proposalID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "proposal_id is required", nil)
		return
	}
	webhookURL := strings.TrimSpace(c.PostForm("webhook_url"))
	if webhookURL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "webhook_url is required", nil)
		return
	}

	docType := scoring.DocumentType("")
	if v := strings.TrimSpace(c.PostForm("document_type")); v != "" {
		parsed, err := scoring.ParseDocumentType(v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown document_type", nil)
			return
		}
		docType = parsed
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	defer file.Close()

	if !h.validateUpload(c, header) {
		return
	}

	ctx := c.Request.Context()
	storageKey, _, mimeType, err := h.Store.Save(ctx, proposalID, header.Filename, file)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to stage document", nil)
		return
	}

	requestID := c.GetString("requestId")

	if h.Queue != nil {
		msg := queue.Message{
			ProposalID: proposalID,
			RequestID:  requestID,
			WebhookURL: webhookURL,
			Documents: []queue.MessageDocument{{
				FileName:     header.Filename,
				StorageKey:   storageKey,
				MimeType:     mimeType,
				DocumentType: string(docType),
			}},
			EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    messageVersion,
		}
		if err := h.Queue.Send(ctx, msg); err != nil {
			telemetry.Error("analysis.enqueue_failed", map[string]any{
				"proposal_id": proposalID,
				"error":       err.Error(),
			})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to enqueue analysis", nil)
			return
		}
		h.accepted(c, proposalID)
		return
	}

	content, err := extract.ExtractText(ctx, h.Store, storageKey, mimeType, header.Filename)
	if err != nil {
		// Same contract as the worker path: the request is accepted and
		// the failure reaches the caller through the webhook.
		telemetry.Warn("analysis.extract_failed", map[string]any{
			"proposal_id": proposalID,
			"file_name":   header.Filename,
			"error_code":  ErrorCodeExtraction,
			"error":       err.Error(),
		})
		content = ""
	}

	h.Svc.AnalyzeDocument(WithRequestID(ctx, requestID), Request{
		ProposalID:   proposalID,
		Content:      content,
		DocumentType: docType,
		WebhookURL:   webhookURL,
		StagedKey:    storageKey,
	})
	h.accepted(c, proposalID)
}

func (h *Handler) analyzeBatch(c *gin.Context) {
	proposalID := strings.TrimSpace(c.PostForm("proposal_id"))
	if proposalID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "proposal_id is required", nil)
		return
	}
	webhookURL := strings.TrimSpace(c.PostForm("webhook_url"))
	if webhookURL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "webhook_url is required", nil)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form is required", nil)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "at least one file is required", nil)
		return
	}
	for _, header := range files {
		if !h.validateUpload(c, header) {
			return
		}
	}

	ctx := c.Request.Context()
	requestID := c.GetString("requestId")

	var staged []queue.MessageDocument
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", nil)
			return
		}
		storageKey, _, mimeType, saveErr := h.Store.Save(ctx, proposalID, header.Filename, f)
		f.Close()
		if saveErr != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to stage document", nil)
			return
		}
		staged = append(staged, queue.MessageDocument{
			FileName:   header.Filename,
			StorageKey: storageKey,
			MimeType:   mimeType,
		})
	}

	if h.Queue != nil {
		msg := queue.Message{
			ProposalID: proposalID,
			RequestID:  requestID,
			WebhookURL: webhookURL,
			Batch:      true,
			Documents:  staged,
			EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    messageVersion,
		}
		if err := h.Queue.Send(ctx, msg); err != nil {
			telemetry.Error("analysis.enqueue_failed", map[string]any{
				"proposal_id": proposalID,
				"error":       err.Error(),
			})
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to enqueue analysis", nil)
			return
		}
		h.accepted(c, proposalID)
		return
	}

	req := BatchRequest{ProposalID: proposalID, WebhookURL: webhookURL}
	for _, doc := range staged {
		content, err := extract.ExtractText(ctx, h.Store, doc.StorageKey, doc.MimeType, doc.FileName)
		if err != nil {
			// Unreadable members are isolated; the batch proceeds with
			// whatever extracts cleanly.
			telemetry.Warn("batch.extract_failed", map[string]any{
				"proposal_id": proposalID,
				"file_name":   doc.FileName,
				"error_code":  ErrorCodeExtraction,
				"error":       err.Error(),
			})
			content = ""
		}
		req.Documents = append(req.Documents, BatchDocument{FileName: doc.FileName, Content: content})
		req.StagedKeys = append(req.StagedKeys, doc.StorageKey)
	}

	h.Svc.AnalyzeBatch(WithRequestID(ctx, requestID), req)
	h.accepted(c, proposalID)
}

func (h *Handler) stats(c *gin.Context) {
	respond.OK(c, gin.H{
		"service":           "proposal-analyzer",
		"cache_enabled":     h.Svc != nil && h.Svc.Cache.Enabled(),
		"queue_enabled":     h.Queue != nil,
		"supported_formats": []string{".pdf", ".txt", ".docx"},
		"max_upload_bytes":  h.MaxUploadBytes,
		"features": []string{
			"content_chunking",
			"rate_limited_dispatch",
			"result_merging",
			"content_caching",
			"composite_scoring",
			"signed_webhooks",
		},
	})
}

func (h *Handler) validateUpload(c *gin.Context, header *multipart.FileHeader) bool {
	if !extract.SupportedExtension(header.Filename) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported file format", []map[string]string{
			{"field": "file", "issue": "supported formats are .pdf, .txt, .docx"},
		})
		return false
	}
	if h.MaxUploadBytes > 0 && header.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "file exceeds maximum size", nil)
		return false
	}
	return true
}

func (h *Handler) accepted(c *gin.Context, proposalID string) {
	respond.JSON(c, http.StatusAccepted, gin.H{
		"proposal_id": proposalID,
		"status":      "queued",
		"tracking_id": uuid.NewString(),
	})
}
