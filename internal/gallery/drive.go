package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"

	"nailbook/pkg/client"
	"nailbook/pkg/config"
)

// DriveClient stores image bytes in Google Drive over REST. Files live in a
// named folder under the configured root; public URLs are derived from the
// file ID, never fetched back.
type DriveClient struct {
	api    *client.HttpClient
	upload *client.HttpClient
	cfg    *config.Config
}

func NewDriveClient(cfg *config.Config) *DriveClient {
	d := &DriveClient{cfg: cfg}
	if cfg.GoogleAPIToken != "" {
		headers := map[string]string{"Authorization": "Bearer " + cfg.GoogleAPIToken}
		d.api = client.NewHttpClient(cfg.DriveBaseURL, headers)
		d.upload = client.NewHttpClient(cfg.DriveUploadBaseURL, headers)
	}
	return d
}

func (d *DriveClient) Configured() bool { return d.api != nil }

type driveFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
}

type driveFileList struct {
	Files []driveFile `json:"files"`
}

const folderMimeType = "application/vnd.google-apps.folder"

// EnsureFolder finds the named folder or creates it.
func (d *DriveClient) EnsureFolder(ctx context.Context, name string) (string, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", name, folderMimeType))
	q.Set("fields", "files(id,name)")

	resp, err := d.api.GET(ctx, "/files?"+q.Encode())
	if err != nil {
		return "", fmt.Errorf("folder lookup failed: %w", err)
	}
	if !resp.OK() {
		return "", fmt.Errorf("folder lookup returned %d", resp.StatusCode)
	}

	var list driveFileList
	if err := resp.DecodeJSON(&list); err != nil {
		return "", fmt.Errorf("failed to decode folder list: %w", err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].ID, nil
	}

	createResp, err := d.api.POST(ctx, "/files", map[string]string{
		"name":     name,
		"mimeType": folderMimeType,
	})
	if err != nil {
		return "", fmt.Errorf("folder create failed: %w", err)
	}
	if !createResp.OK() {
		return "", fmt.Errorf("folder create returned %d", createResp.StatusCode)
	}

	var created driveFile
	if err := createResp.DecodeJSON(&created); err != nil {
		return "", fmt.Errorf("failed to decode created folder: %w", err)
	}
	d.cfg.Log.Info("Drive folder created", "name", name, "folder_id", created.ID)
	return created.ID, nil
}

// Upload sends the image as a multipart related request and returns the new
// file ID.
func (d *DriveClient) Upload(ctx context.Context, folderID, fileName, mimeType string, data []byte) (string, error) {
	meta, err := json.Marshal(map[string]any{
		"name":    fileName,
		"parents": []string{folderID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal file metadata: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := writer.CreatePart(metaHeader)
	if err != nil {
		return "", err
	}
	if _, err := metaPart.Write(meta); err != nil {
		return "", err
	}

	mediaHeader := textproto.MIMEHeader{}
	mediaHeader.Set("Content-Type", mimeType)
	mediaPart, err := writer.CreatePart(mediaHeader)
	if err != nil {
		return "", err
	}
	if _, err := mediaPart.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	contentType := "multipart/related; boundary=" + writer.Boundary()
	resp, err := d.upload.POSTRaw(ctx, "/files?uploadType=multipart", body.Bytes(), contentType)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	if !resp.OK() {
		return "", fmt.Errorf("upload returned %d: %s", resp.StatusCode, resp.Body)
	}

	var file driveFile
	if err := resp.DecodeJSON(&file); err != nil {
		return "", fmt.Errorf("failed to decode uploaded file: %w", err)
	}
	return file.ID, nil
}

// Trash soft-deletes a file so an admin can still rescue it from Drive.
func (d *DriveClient) Trash(ctx context.Context, fileID string) error {
	resp, err := d.api.PATCH(ctx, "/files/"+url.PathEscape(fileID), map[string]bool{"trashed": true})
	if err != nil {
		return fmt.Errorf("trash failed: %w", err)
	}
	if !resp.OK() && resp.StatusCode != 404 {
		return fmt.Errorf("trash returned %d", resp.StatusCode)
	}
	return nil
}

// ViewURL and ThumbURL derive the public links from a file ID.
func ViewURL(fileID string) string {
	return "https://drive.google.com/uc?id=" + fileID
}

func ThumbURL(fileID string) string {
	return "https://drive.google.com/thumbnail?id=" + fileID + "&sz=w400"
}
