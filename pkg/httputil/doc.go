// Package httputil holds the HTTP plumbing of the preview server: JSON
// responses, error responses derived from error codes and bounded request
// bodies.
//
// Handlers report failures as coded errors and let [WriteError] choose the
// status:
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    httputil.WriteError(w, err) // 404 for ErrCodeSessionNotFound
//	    return
//	}
//	httputil.WriteJSON(w, http.StatusOK, sess)
package httputil
