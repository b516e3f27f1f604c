package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/smorand/gslides-go/internal/retry"
)

const pdfMIMEType = "application/pdf"

// PresentationURL returns the canonical editor URL for a presentation.
func PresentationURL(presentationID string) string {
	return fmt.Sprintf("https://docs.google.com/presentation/d/%s/edit", presentationID)
}

// CopyInfo describes the presentation produced by CopyPresentation.
type CopyInfo struct {
	PresentationID string
	Title          string
	URL            string
}

// CopyPresentation duplicates a presentation through Drive, which preserves
// the theme, masters, layouts and all content in one call. folderID, when
// not empty, becomes the copy's parent folder.
func (c *Client) CopyPresentation(ctx context.Context, sourceID, title, folderID string) (*CopyInfo, error) {
	file := &drive.File{Name: title}
	if folderID != "" {
		file.Parents = []string{folderID}
	}

	copied, err := retry.DoWithResult(ctx, c.retry, func(ctx context.Context) (*drive.File, int, error) {
		f, err := c.drive.Files.Copy(sourceID, file).
			Fields("id,name").
			SupportsAllDrives(true).
			Context(ctx).
			Do()
		return f, statusOf(err), err
	})
	if err != nil {
		return nil, fmt.Errorf("copy presentation %q: %w", sourceID, err)
	}

	c.logger.Info("presentation copied",
		slog.String("source_id", sourceID),
		slog.String("presentation_id", copied.Id),
	)
	return &CopyInfo{
		PresentationID: copied.Id,
		Title:          copied.Name,
		URL:            PresentationURL(copied.Id),
	}, nil
}

// DeletePresentation permanently removes the presentation file through
// Drive; the Slides API itself has no delete operation.
func (c *Client) DeletePresentation(ctx context.Context, presentationID string) error {
	err := c.retry.Do(ctx, func(ctx context.Context) (int, error) {
		err := c.drive.Files.Delete(presentationID).
			SupportsAllDrives(true).
			Context(ctx).
			Do()
		return statusOf(err), err
	})
	if err != nil {
		return fmt.Errorf("delete presentation %q: %w", presentationID, err)
	}

	c.InvalidateCache(presentationID)
	c.logger.Info("presentation deleted",
		slog.String("presentation_id", presentationID),
	)
	return nil
}

// ExportPDF renders the presentation to PDF through Drive and returns the
// raw document bytes.
func (c *Client) ExportPDF(ctx context.Context, presentationID string) ([]byte, error) {
	data, err := retry.DoWithResult(ctx, c.retry, func(ctx context.Context) ([]byte, int, error) {
		res, err := c.drive.Files.Export(presentationID, pdfMIMEType).Context(ctx).Download()
		if err != nil {
			return nil, statusOf(err), err
		}
		defer res.Body.Close()
		body, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, res.StatusCode, fmt.Errorf("read export body: %w", err)
		}
		return body, res.StatusCode, nil
	})
	if err != nil {
		return nil, fmt.Errorf("export %q to pdf: %w", presentationID, err)
	}

	c.logger.Info("presentation exported",
		slog.String("presentation_id", presentationID),
		slog.Int("file_size", len(data)),
		slog.Int("page_count", PDFPageCount(data)),
	)
	return data, nil
}

// PDFPageCount estimates the page count of a PDF by counting page object
// markers, excluding the page-tree node. Zero means no marker was found,
// not an empty document.
func PDFPageCount(data []byte) int {
	count := 0
	for _, pat := range [][]byte{[]byte("/Type /Page"), []byte("/Type/Page")} {
		for off := 0; ; {
			i := bytes.Index(data[off:], pat)
			if i < 0 {
				break
			}
			end := off + i + len(pat)
			// "/Type /Pages" is the tree, not a page.
			if end >= len(data) || data[end] != 's' {
				count++
			}
			off = end
		}
	}
	return count
}

// Author identifies who wrote a comment or a reply.
type Author struct {
	DisplayName string
	Email       string
}

// CommentReply is one reply under a Comment, oldest first.
type CommentReply struct {
	ID          string
	Author      Author
	Content     string
	CreatedTime string
}

// Comment is a Drive comment on a presentation. Times are RFC 3339 strings
// as the API reports them.
type Comment struct {
	ID           string
	Author       Author
	Content      string
	HTMLContent  string
	QuotedText   string
	Anchor       string
	Resolved     bool
	CreatedTime  string
	ModifiedTime string
	Replies      []CommentReply
}

// commentFields is the projection requested from comments.list; the method
// rejects calls without an explicit field selection.
const commentFields = "nextPageToken," +
	"comments(id,content,htmlContent,anchor,resolved,createdTime,modifiedTime," +
	"quotedFileContent(value),author(displayName,emailAddress)," +
	"replies(id,content,createdTime,author(displayName,emailAddress)))"

// ListComments returns the presentation's comments, walking every result
// page. Resolved comments are skipped unless includeResolved is set.
func (c *Client) ListComments(ctx context.Context, presentationID string, includeResolved bool) ([]*Comment, error) {
	var out []*Comment
	pageToken := ""
	for {
		list, err := retry.DoWithResult(ctx, c.retry, func(ctx context.Context) (*drive.CommentList, int, error) {
			l, err := c.drive.Comments.List(presentationID).
				Fields(googleapi.Field(commentFields)).
				PageSize(100).
				PageToken(pageToken).
				Context(ctx).
				Do()
			return l, statusOf(err), err
		})
		if err != nil {
			return nil, fmt.Errorf("list comments of %q: %w", presentationID, err)
		}

		for _, cm := range list.Comments {
			if cm == nil || (cm.Resolved && !includeResolved) {
				continue
			}
			out = append(out, commentFromDrive(cm))
		}

		if list.NextPageToken == "" {
			break
		}
		pageToken = list.NextPageToken
	}

	c.logger.Debug("comments listed",
		slog.String("presentation_id", presentationID),
		slog.Int("count", len(out)),
	)
	return out, nil
}

func commentFromDrive(cm *drive.Comment) *Comment {
	out := &Comment{
		ID:           cm.Id,
		Content:      cm.Content,
		HTMLContent:  cm.HtmlContent,
		Anchor:       cm.Anchor,
		Resolved:     cm.Resolved,
		CreatedTime:  cm.CreatedTime,
		ModifiedTime: cm.ModifiedTime,
	}
	if cm.QuotedFileContent != nil {
		out.QuotedText = cm.QuotedFileContent.Value
	}
	if cm.Author != nil {
		out.Author = Author{DisplayName: cm.Author.DisplayName, Email: cm.Author.EmailAddress}
	}
	for _, rp := range cm.Replies {
		if rp == nil {
			continue
		}
		reply := CommentReply{
			ID:          rp.Id,
			Content:     rp.Content,
			CreatedTime: rp.CreatedTime,
		}
		if rp.Author != nil {
			reply.Author = Author{DisplayName: rp.Author.DisplayName, Email: rp.Author.EmailAddress}
		}
		out.Replies = append(out.Replies, reply)
	}
	return out
}
