package handler

import (
	"college-site/internal/content"
	"college-site/internal/data"
	"college-site/internal/logger"
	"college-site/internal/middleware"
	"college-site/internal/service"
	"college-site/internal/session"
	"college-site/internal/view"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
)

const newsPath = "/admin/news"

// maxNewsRequest bounds the whole multipart body; the image itself is capped
// at service.MaxImageSize.
const maxNewsRequest = service.MaxImageSize + 512*1024

// maxTextField bounds a single text part.
const maxTextField = 256 * 1024

// NewsHandler serves the news section of the admin console.
type NewsHandler struct {
	base
	news service.NewsServicer
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(news service.NewsServicer, accounts service.AccountServicer, sm session.Manager, v *view.View, log logger.Logger) *NewsHandler {
	return &NewsHandler{
		base: base{view: v, log: log, sm: sm, accounts: accounts},
		news: news,
	}
}

func (h *NewsHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	data := h.adminData(r)
	data["News"] = content.Load(r.Context(), h.log, "admin news", h.news.List)
	return h.render(w, r, "admin_news.html", data)
}

func (h *NewsHandler) newHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.form(w, r, nil, service.NewsInput{}, content.FormState{})
}

func (h *NewsHandler) editHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r)
	if appErr != nil {
		return appErr
	}
	n, err := h.news.Get(r.Context(), id)
	if err != nil {
		return lookupError(err)
	}
	return h.form(w, r, n, service.NewsInput{Title: n.Title, Body: n.Body}, content.FormState{})
}

func (h *NewsHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var form content.FormState
	in, parseErr := readNewsForm(w, r)
	ok := h.submit(w, r, &form, func() error {
		if parseErr != nil {
			return parseErr
		}
		_, err := h.news.Create(r.Context(), adminID(r), in)
		return err
	}, newsPath)
	if ok {
		return nil
	}
	return h.form(w, r, nil, in, form)
}

func (h *NewsHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := parseID(r)
	if appErr != nil {
		return appErr
	}
	n, err := h.news.Get(r.Context(), id)
	if err != nil {
		return lookupError(err)
	}

	var form content.FormState
	in, parseErr := readNewsForm(w, r)
	ok := h.submit(w, r, &form, func() error {
		if parseErr != nil {
			return parseErr
		}
		_, err := h.news.Update(r.Context(), id, adminID(r), in)
		return err
	}, newsPath)
	if ok {
		return nil
	}
	return h.form(w, r, n, in, form)
}

func (h *NewsHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.remove(w, r, func(id int64) error {
		return h.news.Delete(r.Context(), id)
	}, newsPath)
}

// form renders the create form when item is nil and the edit form otherwise.
func (h *NewsHandler) form(w http.ResponseWriter, r *http.Request, item *data.News, in service.NewsInput, form content.FormState) *middleware.AppError {
	data := h.adminData(r)
	data["Item"] = item
	data["Input"] = in
	data["MaxImageMB"] = service.MaxImageSize / (1024 * 1024)
	return h.formPage(w, r, "admin_news_form.html", form, data)
}

// readNewsForm streams the news form part by part. Text fields are kept even
// when a later image part is rejected, so the form can be re-rendered with
// them. A field sent after a rejected image is lost; the form puts the image
// last.
func readNewsForm(w http.ResponseWriter, r *http.Request) (service.NewsInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxNewsRequest)
	var in service.NewsInput

	mr, err := r.MultipartReader()
	if errors.Is(err, http.ErrNotMultipart) {
		if err := r.ParseForm(); err != nil {
			return in, formError(err)
		}
		in.Title = r.PostFormValue("title")
		in.Body = r.PostFormValue("body")
		return in, nil
	}
	if err != nil {
		return in, err
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return in, nil
		}
		if err != nil {
			return in, formError(err)
		}

		switch part.FormName() {
		case "title":
			in.Title, err = readField(part)
		case "body":
			in.Body, err = readField(part)
		case "image":
			in.Image, err = readImage(part)
		}
		part.Close()
		if err != nil {
			return in, formError(err)
		}
	}
}

// formError reports a body over the request limit as an oversized image.
func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &service.ValidationError{Field: "image", Key: "image.size"}
	}
	return err
}

func readField(part *multipart.Part) (string, error) {
	b, err := io.ReadAll(io.LimitReader(part, maxTextField))
	return string(b), err
}

// readImage returns the uploaded file, or nil when none was chosen. The type
// is checked before any byte is read and at most MaxImageSize+1 bytes are
// buffered.
func readImage(part *multipart.Part) (*service.ImageFile, error) {
	if part.FileName() == "" {
		return nil, nil
	}
	img := &service.ImageFile{
		Filename:    part.FileName(),
		ContentType: part.Header.Get("Content-Type"),
	}
	if err := service.CheckImage(img); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(part, service.MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	img.Data = data
	img.Size = int64(len(data))
	if err := service.CheckImage(img); err != nil {
		return nil, err
	}
	return img, nil
}
