// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// fakeExec pretends a configurable set of runtime binaries is installed and
// records every command line it is asked to run.
type fakeExec struct {
	installed map[string]bool // binaries on PATH whose "info" also succeeds
	images    map[string]bool // "bin image" pairs that exist locally
	calls     []string
	convert   func(stdin io.Reader, stdout io.Writer) error
}

func (f *fakeExec) LookPath(file string) (string, error) {
	if f.installed[file] {
		return "/usr/local/bin/" + file, nil
	}
	return "", errors.New(file + ": executable file not found in $PATH")
}

func (f *fakeExec) RunSilent(name string, args ...string) error {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	if len(args) == 1 && args[0] == "info" {
		if f.installed[name] {
			return nil
		}
		return errors.New("cannot connect to daemon")
	}
	// Image-existence probes end with the image reference.
	if f.images[name+" "+args[len(args)-1]] {
		return nil
	}
	return errors.New("no such image")
}

func (f *fakeExec) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	if f.convert == nil {
		return errors.New("no conversion configured")
	}
	return f.convert(stdin, stdout)
}

func TestDetectRuntimePrefersDocker(t *testing.T) {
	tests := []struct {
		name      string
		installed map[string]bool
		want      string
		wantErr   bool
	}{
		{"only docker", map[string]bool{"docker": true}, "docker", false},
		{"only podman", map[string]bool{"podman": true}, "podman", false},
		{"both present", map[string]bool{"docker": true, "podman": true}, "docker", false},
		{"docker daemon down, podman up", map[string]bool{"podman": true}, "podman", false},
		{"bare host", map[string]bool{}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(&fakeExec{installed: tt.installed})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected detection error")
				}
				if !strings.Contains(err.Error(), "no container runtime available") {
					t.Errorf("error = %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("detectRuntime: %v", err)
			}
			if rt.Name() != tt.want {
				t.Errorf("detected %q, want %q", rt.Name(), tt.want)
			}
		})
	}
}

func TestImageExistsUsesRuntimeProbe(t *testing.T) {
	// Docker and podman spell the image-existence check differently.
	exec := &fakeExec{images: map[string]bool{
		"docker markitdown:latest": true,
		"podman markitdown:latest": true,
	}}

	if err := newDockerRuntime(exec).ImageExists("markitdown:latest"); err != nil {
		t.Errorf("docker probe: %v", err)
	}
	if err := newPodmanRuntime(exec).ImageExists("markitdown:latest"); err != nil {
		t.Errorf("podman probe: %v", err)
	}
	wantCalls := []string{
		"docker image inspect markitdown:latest",
		"podman image exists markitdown:latest",
	}
	for i, want := range wantCalls {
		if exec.calls[i] != want {
			t.Errorf("call %d = %q, want %q", i, exec.calls[i], want)
		}
	}

	err := newDockerRuntime(&fakeExec{}).ImageExists("markitdown:latest")
	if err == nil || !strings.Contains(err.Error(), "markitdown:latest") {
		t.Errorf("missing image error = %v", err)
	}
}

func TestRunPipesDocumentThroughContainer(t *testing.T) {
	// Models the markitdown backend: PDF bytes in, extracted text out.
	exec := &fakeExec{convert: func(stdin io.Reader, stdout io.Writer) error {
		doc, err := io.ReadAll(stdin)
		if err != nil {
			return err
		}
		if !bytes.HasPrefix(doc, []byte("%PDF-")) {
			return errors.New("not a pdf")
		}
		_, err = stdout.Write([]byte("# Attention Is All You Need\n\nAbstract text."))
		return err
	}}

	var out bytes.Buffer
	rt := newDockerRuntime(exec)
	if err := rt.Run("markitdown:latest", strings.NewReader("%PDF-1.7 body"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "Attention Is All You Need") {
		t.Errorf("converted output = %q", got)
	}
	if exec.calls[0] != "docker run --rm -i markitdown:latest" {
		t.Errorf("container invocation = %q", exec.calls[0])
	}
}

func TestRunWrapsContainerFailure(t *testing.T) {
	exec := &fakeExec{convert: func(io.Reader, io.Writer) error {
		return errors.New("exit status 137")
	}}

	err := newPodmanRuntime(exec).Run("markitdown:latest", strings.NewReader(""), io.Discard)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "podman") || !strings.Contains(err.Error(), "markitdown:latest") {
		t.Errorf("error should name runtime and image, got: %v", err)
	}
}
