package playstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	androidpublisher "google.golang.org/api/androidpublisher/v3"
)

// AppDetails reads the app's store metadata through a throwaway edit.
func (c *Client) AppDetails(ctx context.Context, packageName string) (json.RawMessage, error) {
	edit, err := c.svc.Edits.Insert(packageName, &androidpublisher.AppEdit{}).Context(ctx).Do()
	if err != nil {
		return nil, toAuthorityError(fmt.Errorf("edits.insert: %w", err), 0)
	}
	defer func() {
		if err := c.svc.Edits.Delete(packageName, edit.Id).Context(ctx).Do(); err != nil {
			slog.Warn("failed to delete probe edit", "operation", "app_details", "package_name", packageName, "edit_id", edit.Id, "error", err)
		}
	}()

	details, err := c.svc.Edits.Details.Get(packageName, edit.Id).Context(ctx).Do()
	if err != nil {
		return nil, toAuthorityError(fmt.Errorf("edits.details.get: %w", err), 0)
	}

	return json.Marshal(details)
}
