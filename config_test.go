package puffy

import (
	"testing"
	"testing/fstest"
)

func TestLoadRunConfig(t *testing.T) {
	def := RunConfig{Title: "default", Width: 1280, Height: 720, ShowFPS: true}
	tests := []struct {
		name string
		file string
		want RunConfig
	}{
		{
			name: "overrides",
			file: "title = \"Puffy\"\nwidth = 800\nheight = 600\ndebug = true\n",
			want: RunConfig{Title: "Puffy", Width: 800, Height: 600, ShowFPS: true, Debug: true},
		},
		{
			name: "partial keeps defaults",
			file: "show_fps = false\n",
			want: RunConfig{Title: "default", Width: 1280, Height: 720},
		},
		{
			name: "unknown keys ignored",
			file: "resizable = true\nvsync = false\n",
			want: RunConfig{Title: "default", Width: 1280, Height: 720, ShowFPS: true, Resizable: true},
		},
		{
			name: "empty file",
			file: "",
			want: def,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"config.toml": {Data: []byte(tt.file)}}
			got, err := LoadRunConfig(fsys, "config.toml", def)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadRunConfigMissingFile(t *testing.T) {
	def := RunConfig{Title: "default"}
	got, err := LoadRunConfig(fstest.MapFS{}, "config.toml", def)
	if err != nil || got != def {
		t.Errorf("got %+v, %v; want defaults and no error", got, err)
	}
}

func TestLoadRunConfigErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":        "width = = 3",
		"wrong type":    "width = \"wide\"",
		"negative size": "width = -1",
	}
	for name, file := range tests {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"config.toml": {Data: []byte(file)}}
			def := RunConfig{Title: "default"}
			got, err := LoadRunConfig(fsys, "config.toml", def)
			if err == nil {
				t.Fatal("expected error")
			}
			if got != def {
				t.Errorf("got %+v on error, want defaults", got)
			}
		})
	}
}
