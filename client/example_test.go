package client_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/adamwoolhether/rester/client"
	"github.com/adamwoolhether/rester/client/inflect"
	"github.com/adamwoolhether/rester/client/mediatype"
)

func ExampleBuild() {
	c, err := client.Build(
		client.WithTimeout(10*time.Second),
		client.WithUserAgent("example/1.0"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(c.MediaTypes().ContentTypes())
	// Output: [application/xml application/json application/x-www-form-urlencoded]
}

func ExampleWithMediaTypes() {
	c, _ := client.Build(client.WithMediaTypes(mediatype.JSON{}))

	_, err := c.MediaTypes().Resolve(mediatype.ContentTypeXML)
	fmt.Println(c.MediaTypes().ContentTypes(), errors.Is(err, client.ErrMediaTypeNotFound))
	// Output: [application/json] true
}

func ExampleClient_At() {
	c, _ := client.Build()

	if _, err := c.At("http://[invalid"); err != nil {
		fmt.Println(errors.Is(err, client.ErrMalformedAddress))
	}

	req, _ := c.At("https://example.com/orders?page=2")
	last, _ := c.LastURI()

	fmt.Println(req.URI().Query().Get("page"), last)
	// Output:
	// true
	// 2 https://example.com/orders?page=2
}

func ExampleClient_UseDispatcher() {
	c, _ := client.Build()

	stub := client.DispatcherFunc(func(req *http.Request) (*http.Response, error) {
		fmt.Println("stub:", req.Method, req.URL.Path)
		return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody}, nil
	})

	req, _ := c.UseDispatcher(stub).At("https://example.com/ping")
	resp, _ := req.Get(context.Background())

	fmt.Println(resp.StatusCode)
	// Output:
	// stub: GET /ping
	// 204
}

func ExampleClient_Collection() {
	c, _ := client.Build()
	base, _ := url.Parse("https://api.example.com/v1")

	fmt.Println(c.Collection(base, "Person"))

	c.UseInflector(inflect.Funcs{Plural: func(s string) string { return s }})
	fmt.Println(c.Collection(base, "Person"))
	// Output:
	// https://api.example.com/v1/people
	// https://api.example.com/v1/person
}

func ExampleRequest_Post() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/users/7")
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	type user struct {
		Name string `json:"name"`
	}

	c, _ := client.Build()
	req, _ := c.At(ts.URL + "/users")

	resp, err := req.Post(context.Background(), user{Name: "alice"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := resp.Expect(http.StatusCreated); err != nil {
		fmt.Println("error:", err)
		return
	}

	next, _ := resp.Location()
	fmt.Println(next.URI().Path)
	// Output: /users/7
}

func ExampleResponse_Decode() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		fmt.Fprint(w, `{"status":"ok"}`)
	}))
	defer ts.Close()

	c, _ := client.Build()
	req, _ := c.At(ts.URL)
	resp, _ := req.Get(context.Background())

	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if err := resp.Decode(&body); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(body.Status)
	// Output: ok
}

func ExampleRequest_Async() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c, _ := client.Build()
	req, _ := c.At(ts.URL)

	resp, err := req.Async(context.Background(), http.MethodGet, nil).Get()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(resp.StatusCode)
	// Output: 202
}
