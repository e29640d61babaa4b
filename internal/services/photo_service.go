package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"
)

const maxPhotoSize = 10 << 20 // Imgur's limit

// ImgurResponse is the relevant slice of the Imgur API response.
type ImgurResponse struct {
	Data struct {
		ID         string `json:"id"`
		Link       string `json:"link"`
		DeleteHash string `json:"deletehash"`
		Type       string `json:"type"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// PhotoUploadResult is what handlers return to the client.
type PhotoUploadResult struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// UploadPetPhoto pushes a pet photo to the Imgur gateway and returns its
// public URL. The image is passed through untouched; resizing and
// transcoding are the gateway's problem.
func UploadPetPhoto(file multipart.File, header *multipart.FileHeader) (*PhotoUploadResult, error) {
	clientID := os.Getenv("IMGUR_CLIENT_ID")
	if clientID == "" {
		return nil, fmt.Errorf("IMGUR_CLIENT_ID not configured")
	}

	if header.Size > maxPhotoSize {
		return nil, fmt.Errorf("photo too large (max %d MB)", maxPhotoSize>>20)
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unsupported file type %q", contentType)
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err := writer.WriteField("image", base64.StdEncoding.EncodeToString(fileBytes)); err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.imgur.com/3/image", &requestBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}
	defer resp.Body.Close()

	var imgurResp ImgurResponse
	if err := json.NewDecoder(resp.Body).Decode(&imgurResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !imgurResp.Success {
		return nil, fmt.Errorf("imgur upload failed with status %d", imgurResp.Status)
	}

	return &PhotoUploadResult{
		URL: imgurResp.Data.Link,
		ID:  imgurResp.Data.ID,
	}, nil
}
