package chromium

import (
	"errors"
	"reflect"
	"testing"
)

const sampleBookmarks = `{
  "roots": {
    "bookmark_bar": {
      "type": "folder",
      "name": "Bookmarks bar",
      "children": [
        {"type": "url", "name": "GitHub", "url": "https://github.com", "date_added": "13350000000000000"},
        {
          "type": "folder",
          "name": "Dev",
          "children": [
            {"type": "url", "name": "Go", "url": "https://go.dev"},
            {
              "type": "folder",
              "name": "Frontend",
              "children": [
                {"type": "url", "name": "React", "url": "https://react.dev"}
              ]
            }
          ]
        }
      ]
    },
    "other": {
      "type": "folder",
      "name": "Other bookmarks",
      "children": [
        {"type": "url", "name": "Naver", "url": "https://naver.com"}
      ]
    },
    "synced": {
      "type": "folder",
      "name": "Mobile bookmarks",
      "children": []
    }
  },
  "version": 1
}`

func TestParse(t *testing.T) {
	bookmarks, err := Parse([]byte(sampleBookmarks))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(bookmarks) != 4 {
		t.Fatalf("Parse() returned %d bookmarks, want 4", len(bookmarks))
	}

	// Pre-order traversal, bookmark_bar root first.
	names := make([]string, len(bookmarks))
	for i, bm := range bookmarks {
		names[i] = bm.Name
	}
	wantNames := []string{"GitHub", "Go", "React", "Naver"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("bookmark order = %v, want %v", names, wantNames)
	}

	// Root name is carried as the first path segment.
	if !reflect.DeepEqual(bookmarks[0].FolderPath, []string{"Bookmarks bar"}) {
		t.Errorf("GitHub path = %v, want [Bookmarks bar]", bookmarks[0].FolderPath)
	}
	if !reflect.DeepEqual(bookmarks[2].FolderPath, []string{"Bookmarks bar", "Dev", "Frontend"}) {
		t.Errorf("React path = %v", bookmarks[2].FolderPath)
	}
}

func TestParseChromeTimestamps(t *testing.T) {
	bookmarks, err := Parse([]byte(sampleBookmarks))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if bookmarks[0].AddDate.IsZero() {
		t.Error("date_added not converted")
	}
	if year := bookmarks[0].AddDate.Year(); year < 2000 || year > 2100 {
		t.Errorf("date_added converted to implausible year %d", year)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Parse() error = %v, want ErrInvalidFormat", err)
	}
}

func TestParseMissingRoots(t *testing.T) {
	_, err := Parse([]byte(`{"version": 1}`))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Parse() error = %v, want ErrInvalidFormat", err)
	}
}

func TestParseSkipsIncompleteNodes(t *testing.T) {
	payload := `{
  "roots": {
    "bookmark_bar": {
      "type": "folder",
      "name": "Bookmarks bar",
      "children": [
        {"type": "url", "name": "", "url": "https://nameless.com"},
        {"type": "url", "name": "No URL", "url": ""},
        {"type": "url", "name": "OK", "url": "https://ok.com"}
      ]
    }
  }
}`
	bookmarks, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(bookmarks) != 1 || bookmarks[0].Name != "OK" {
		t.Errorf("Parse() = %+v, want only the complete node", bookmarks)
	}
}
