package handlers

import (
	"context"
	"testing"
)

func addImages(t *testing.T, handler *TourHandler, token, tourID string, urls []string) *AddTourImagesResponse {
	t.Helper()
	req := &AddTourImagesRequest{}
	req.Authorization = token
	req.ID = tourID
	req.Body.ImageURLs = &urls
	resp, err := handler.HandleAddImages(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleAddImages returned error: %v", err)
	}
	return resp
}

func TestHandleAddImages(t *testing.T) {
	env := setup(t)
	handler := newTourHandler(env)
	tour := createTour(t, handler, env.adminToken, "Gallery Tour")

	t.Run("AppendsAndReportsAdded", func(t *testing.T) {
		resp := addImages(t, handler, env.adminToken, tour.ID, []string{"/api/images/a.webp", "/api/images/b.webp"})
		if resp.Body.Message != "2 image(s) added successfully" {
			t.Errorf("unexpected message %q", resp.Body.Message)
		}
		if len(resp.Body.AddedURLs) != 2 {
			t.Errorf("expected 2 added URLs, got %v", resp.Body.AddedURLs)
		}
		if len(resp.Body.Tour.ImageURLs) != 2 {
			t.Errorf("expected tour to hold 2 images, got %v", resp.Body.Tour.ImageURLs)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		resp := addImages(t, handler, env.adminToken, tour.ID, []string{"/api/images/a.webp", "/api/images/c.webp", ""})
		if resp.Body.Message != "1 image(s) added successfully" {
			t.Errorf("unexpected message %q", resp.Body.Message)
		}
		if len(resp.Body.AddedURLs) != 1 || resp.Body.AddedURLs[0] != "/api/images/c.webp" {
			t.Errorf("expected only the new URL to be reported, got %v", resp.Body.AddedURLs)
		}
		if len(resp.Body.Tour.ImageURLs) != 3 {
			t.Errorf("expected 3 images, got %v", resp.Body.Tour.ImageURLs)
		}
	})

	t.Run("MissingField", func(t *testing.T) {
		req := &AddTourImagesRequest{}
		req.Authorization = env.adminToken
		req.ID = tour.ID
		_, err := handler.HandleAddImages(context.Background(), req)
		assertStatus(t, err, 400)
	})

	t.Run("UnknownTour", func(t *testing.T) {
		req := &AddTourImagesRequest{}
		req.Authorization = env.adminToken
		req.ID = "00000000-0000-0000-0000-000000000000"
		urls := []string{"/api/images/a.webp"}
		req.Body.ImageURLs = &urls
		_, err := handler.HandleAddImages(context.Background(), req)
		assertStatus(t, err, 404)
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		req := &AddTourImagesRequest{}
		req.Authorization = env.userToken
		req.ID = tour.ID
		urls := []string{"/api/images/a.webp"}
		req.Body.ImageURLs = &urls
		_, err := handler.HandleAddImages(context.Background(), req)
		assertStatus(t, err, 403)
	})
}

func TestHandleReplaceImages(t *testing.T) {
	env := setup(t)
	handler := newTourHandler(env)
	tour := createTour(t, handler, env.adminToken, "Gallery Tour")
	addImages(t, handler, env.adminToken, tour.ID, []string{"/api/images/old.webp"})

	t.Run("ReplacesKeepingDuplicates", func(t *testing.T) {
		req := &ReplaceTourImagesRequest{}
		req.Authorization = env.adminToken
		req.ID = tour.ID
		urls := []string{"/api/images/x.webp", "/api/images/x.webp", ""}
		req.Body.ImageURLs = &urls
		resp, err := handler.HandleReplaceImages(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleReplaceImages returned error: %v", err)
		}
		got := resp.Body.Tour.ImageURLs
		if len(got) != 2 || got[0] != "/api/images/x.webp" || got[1] != "/api/images/x.webp" {
			t.Errorf("expected the duplicate to survive replace, got %v", got)
		}
	})

	t.Run("EmptyListClears", func(t *testing.T) {
		req := &ReplaceTourImagesRequest{}
		req.Authorization = env.adminToken
		req.ID = tour.ID
		urls := []string{}
		req.Body.ImageURLs = &urls
		resp, err := handler.HandleReplaceImages(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleReplaceImages returned error: %v", err)
		}
		if len(resp.Body.Tour.ImageURLs) != 0 {
			t.Errorf("expected an empty list, got %v", resp.Body.Tour.ImageURLs)
		}
	})

	t.Run("MissingField", func(t *testing.T) {
		req := &ReplaceTourImagesRequest{}
		req.Authorization = env.adminToken
		req.ID = tour.ID
		_, err := handler.HandleReplaceImages(context.Background(), req)
		assertStatus(t, err, 400)
	})
}

func TestHandleRemoveImage(t *testing.T) {
	env := setup(t)
	handler := newTourHandler(env)
	tour := createTour(t, handler, env.adminToken, "Gallery Tour")
	addImages(t, handler, env.adminToken, tour.ID, []string{"/api/images/a.webp", "/api/images/b.webp"})

	t.Run("Removes", func(t *testing.T) {
		req := &RemoveTourImageRequest{}
		req.Authorization = env.adminToken
		req.ID = tour.ID
		req.Body.ImageURL = "/api/images/a.webp"
		resp, err := handler.HandleRemoveImage(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleRemoveImage returned error: %v", err)
		}
		got := resp.Body.Tour.ImageURLs
		if len(got) != 1 || got[0] != "/api/images/b.webp" {
			t.Errorf("expected only b.webp to remain, got %v", got)
		}
	})

	t.Run("AbsentURLIsNoOp", func(t *testing.T) {
		req := &RemoveTourImageRequest{}
		req.Authorization = env.adminToken
		req.ID = tour.ID
		req.Body.ImageURL = "/api/images/missing.webp"
		resp, err := handler.HandleRemoveImage(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleRemoveImage returned error: %v", err)
		}
		if len(resp.Body.Tour.ImageURLs) != 1 {
			t.Errorf("expected the list to be unchanged, got %v", resp.Body.Tour.ImageURLs)
		}
	})

	t.Run("MissingField", func(t *testing.T) {
		req := &RemoveTourImageRequest{}
		req.Authorization = env.adminToken
		req.ID = tour.ID
		_, err := handler.HandleRemoveImage(context.Background(), req)
		assertStatus(t, err, 400)
	})
}
