package source

import (
	"errors"
	"testing"
)

const userComponentSource = `import { Component } from '@angular/core';
import { User } from './user.model';

@Component({ selector: 'app-user', template: '' })
export class UserComponent {
  user: User;
  count: number = 0;

  constructor(private userService: UserService) {}

  onSave(event: MouseEvent): void {}
}
`

func newTestLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	loader, err := NewLoader(NewMemoryFS(files), DefaultCacheSize)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	return loader
}

func TestLoaderLoad(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"/app/user.component.ts": userComponentSource,
	})

	sf, err := loader.Load("/app/user.component.ts")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sf == nil {
		t.Fatal("expected a parsed source file")
	}
	if FirstClass(sf) == nil {
		t.Fatal("expected a class declaration in the parsed file")
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	loader := newTestLoader(t, nil)

	_, err := loader.Load("/app/missing.ts")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLoaderCachesParsedFiles(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"/app/user.component.ts": userComponentSource,
	})

	first, err := loader.Load("/app/user.component.ts")
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	second, err := loader.Load("/app/user.component.ts")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if first != second {
		t.Fatal("expected the cached parse on the second load")
	}
}

func TestLoaderInvalidateForcesReparse(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"/app/user.component.ts": userComponentSource,
	})

	first, err := loader.Load("/app/user.component.ts")
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	loader.Invalidate("/app/user.component.ts")
	second, err := loader.Load("/app/user.component.ts")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if first == second {
		t.Fatal("expected a fresh parse after Invalidate")
	}
}

func TestLoaderPurge(t *testing.T) {
	loader := newTestLoader(t, map[string]string{
		"/app/a.ts": "export class A {}",
		"/app/b.ts": "export class B {}",
	})

	if _, err := loader.Load("/app/a.ts"); err != nil {
		t.Fatalf("Load a: %v", err)
	}
	if _, err := loader.Load("/app/b.ts"); err != nil {
		t.Fatalf("Load b: %v", err)
	}
	loader.Purge()
	if _, err := loader.Load("/app/a.ts"); err != nil {
		t.Fatalf("Load after Purge: %v", err)
	}
}
