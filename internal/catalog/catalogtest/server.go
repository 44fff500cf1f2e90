// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalogtest runs an in-process catalog API for tests of packages
// built on the catalog client.
package catalogtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Drink is one catalog record in wire form.
type Drink map[string]any

// Server answers search.php, lookup.php, random.php, filter.php and
// list.php from a fixed drink list.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	drinks []Drink
	fail   map[string]int
	hits   map[string]int
}

// NewServer starts a server over drinks and closes it when t finishes.
func NewServer(t *testing.T, drinks ...Drink) *Server {
	t.Helper()
	s := &Server{drinks: drinks, fail: map[string]int{}, hits: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Fail makes endpoint (e.g. "search.php", or "list.php?g" for one list
// field) answer with status from now on. Status 0 restores normal answers.
func (s *Server) Fail(endpoint string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.fail, endpoint)
		return
	}
	s.fail[endpoint] = status
}

// Hits returns how many requests endpoint has received.
func (s *Server) Hits(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[endpoint]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	q := r.URL.Query()

	s.mu.Lock()
	s.hits[endpoint]++
	status := s.fail[endpoint]
	if endpoint == "list.php" {
		for k := range q {
			if st, ok := s.fail[endpoint+"?"+k]; ok {
				status = st
			}
		}
	}
	drinks := s.drinks
	s.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}

	var out []Drink
	switch endpoint {
	case "search.php":
		name := strings.ToLower(q.Get("s"))
		for _, d := range drinks {
			if strings.Contains(strings.ToLower(str(d["strDrink"])), name) {
				out = append(out, d)
			}
		}
	case "lookup.php":
		for _, d := range drinks {
			if str(d["idDrink"]) == q.Get("i") {
				out = append(out, d)
			}
		}
	case "random.php":
		if len(drinks) > 0 {
			out = append(out, drinks[0])
		}
	case "filter.php":
		out = filter(drinks, q)
	case "list.php":
		out = list(drinks, q)
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if len(out) == 0 {
		json.NewEncoder(w).Encode(map[string]any{"drinks": nil})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"drinks": out})
}

var filterFields = map[string]string{"c": "strCategory", "g": "strGlass", "a": "strAlcoholic"}

func filter(drinks []Drink, q map[string][]string) []Drink {
	var out []Drink
	for _, d := range drinks {
		keep := true
		for param, vals := range q {
			want := strings.ToLower(vals[0])
			if field, ok := filterFields[param]; ok {
				keep = keep && strings.ToLower(str(d[field])) == want
			} else if param == "i" {
				keep = keep && hasIngredient(d, want)
			}
		}
		if keep {
			out = append(out, Drink{"idDrink": d["idDrink"], "strDrink": d["strDrink"], "strDrinkThumb": d["strDrinkThumb"]})
		}
	}
	return out
}

func list(drinks []Drink, q map[string][]string) []Drink {
	field, outKey := "", ""
	switch {
	case q["c"] != nil:
		field, outKey = "strCategory", "strCategory"
	case q["g"] != nil:
		field, outKey = "strGlass", "strGlass"
	case q["a"] != nil:
		field, outKey = "strAlcoholic", "strAlcoholic"
	case q["i"] != nil:
		field, outKey = "strIngredient", "strIngredient1"
	}
	seen := map[string]bool{}
	var out []Drink
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, Drink{outKey: v})
		}
	}
	for _, d := range drinks {
		if field == "strIngredient" {
			for i := 1; i <= 15; i++ {
				add(str(d["strIngredient"+strconv.Itoa(i)]))
			}
			continue
		}
		add(str(d[field]))
	}
	return out
}

func hasIngredient(d Drink, want string) bool {
	for i := 1; i <= 15; i++ {
		if strings.ToLower(str(d["strIngredient"+strconv.Itoa(i)])) == want {
			return true
		}
	}
	return false
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
