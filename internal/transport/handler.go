package transport

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-dental-annotator/internal/config"
	apperrors "go-dental-annotator/internal/errors"
	"go-dental-annotator/internal/logger"
	"go-dental-annotator/internal/pipeline"
	"go-dental-annotator/internal/service"
	"go-dental-annotator/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewHandler builds the HTTP routes around the annotation service
func NewHandler(annotations service.AnnotationService, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/", welcome)
	r.GET("/health", healthCheck)
	r.POST("/annotate", annotateImage(annotations, cfg))
	r.POST("/annotate-with-data", annotateImageWithData(annotations, cfg))
	r.POST("/annotate-url", annotateImageFromURL(annotations, cfg))

	return r
}

// annotateImage handles a multipart radiograph upload and responds with the
// annotated PNG, carrying the region count in the X-Teeth-Count header.
func annotateImage(s service.AnnotationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := processUpload(c, s, cfg)
		if !ok {
			return
		}

		c.Header("X-Teeth-Count", strconv.Itoa(result.Annotations.TeethCount))
		c.Data(http.StatusOK, "image/png", result.ImageBytes)
	}
}

// annotateImageWithData handles a multipart radiograph upload and responds
// with JSON carrying the base64 annotated image plus the full descriptor.
func annotateImageWithData(s service.AnnotationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, ok := processUpload(c, s, cfg)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, models.AnnotateWithDataResponse{
			Image:       base64.StdEncoding.EncodeToString(result.ImageBytes),
			Annotations: result.Annotations,
		})
	}
}

// annotateImageFromURL fetches a radiograph by URL and responds with the
// same JSON body as the with-data route.
func annotateImageFromURL(s service.AnnotationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.AnnotateURLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		result, err := s.AnnotateRadiographFromURL(ctx, req.URL)
		if err != nil {
			respondProcessingError(c, err)
			return
		}

		logCompleted(c, startTime, result.Annotations.TeethCount)
		c.JSON(http.StatusOK, models.AnnotateWithDataResponse{
			Image:       base64.StdEncoding.EncodeToString(result.ImageBytes),
			Annotations: result.Annotations,
		})
	}
}

// processUpload reads and validates the uploaded radiograph, runs it
// through the annotation service, and reports errors on the context. The
// boolean return is false when a response has already been written.
func processUpload(c *gin.Context, s service.AnnotationService, cfg *config.Config) (*pipeline.Result, bool) {
	startTime := time.Now()
	ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
	defer cancel()

	logger.WithFields(logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_agent": c.Request.UserAgent(),
		"ip":         c.ClientIP(),
	}).Info("Processing radiograph annotation request")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"ip": c.ClientIP(),
		}).Error("Missing image upload")
		respondError(c, http.StatusBadRequest, "missing image file", err)
		return nil, false
	}

	if err := checkUploadContentType(fileHeader); err != nil {
		respondError(c, http.StatusBadRequest, "file must be an image", err)
		return nil, false
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read upload", err)
		return nil, false
	}

	result, err := s.AnnotateRadiograph(ctx, data)
	if err != nil {
		respondProcessingError(c, err)
		return nil, false
	}

	logCompleted(c, startTime, result.Annotations.TeethCount)
	return result, true
}

func checkUploadContentType(fileHeader *multipart.FileHeader) error {
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewValidationError(
			fmt.Sprintf("unexpected content type %q", contentType), nil)
	}
	return nil
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func respondProcessingError(c *gin.Context, err error) {
	statusCode := apperrors.GetStatusCode(err)
	if errors.Is(err, context.DeadlineExceeded) {
		statusCode = http.StatusGatewayTimeout
	}
	respondError(c, statusCode, "error processing the image", err)
}

func logCompleted(c *gin.Context, startTime time.Time, teethCount int) {
	logger.WithFields(logrus.Fields{
		"path":               c.Request.URL.Path,
		"processing_time_ms": time.Since(startTime).Milliseconds(),
		"teeth_count":        teethCount,
	}).Info("Radiograph annotation completed successfully")
}

func welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Dental Radiograph Annotation API",
	})
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
