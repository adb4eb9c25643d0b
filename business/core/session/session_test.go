package session_test

import (
	"testing"

	"github.com/codehive-india/showcase/business/core/session"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestSessionLifecycle(t *testing.T) {
	dir := t.TempDir()

	t.Log("Given the need to track the locally asserted identity.")
	{
		t.Log("\tTest 0:\tWhen logging in and out.")
		{
			store, err := session.New(dir)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open the store: %s", failed, err)
			}

			if store.IsLoggedIn() {
				t.Fatalf("\t%s\tTest 0:\tShould start logged out.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould start logged out.", success)

			if err := store.Login("alice"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to log in: %s", failed, err)
			}
			if !store.IsLoggedIn() || store.Current() != "alice" {
				t.Fatalf("\t%s\tTest 0:\tShould report the active handle, got %q.", failed, store.Current())
			}
			t.Logf("\t%s\tTest 0:\tShould report the active handle.", success)

			if err := store.Logout(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to log out: %s", failed, err)
			}
			if store.IsLoggedIn() || store.Current() != "" {
				t.Fatalf("\t%s\tTest 0:\tShould report logged out.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould report logged out.", success)
		}

		t.Log("\tTest 1:\tWhen the process restarts.")
		{
			store, err := session.New(dir)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to open the store: %s", failed, err)
			}
			if err := store.Login("bob"); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to log in: %s", failed, err)
			}

			// A fresh store over the same directory is the reload.
			reloaded, err := session.New(dir)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to reopen the store: %s", failed, err)
			}
			if !reloaded.IsLoggedIn() || reloaded.Current() != "bob" {
				t.Fatalf("\t%s\tTest 1:\tShould survive a reload, got %q.", failed, reloaded.Current())
			}
			t.Logf("\t%s\tTest 1:\tShould survive a reload.", success)

			if err := reloaded.Logout(); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to log out: %s", failed, err)
			}

			again, err := session.New(dir)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to reopen the store: %s", failed, err)
			}
			if again.IsLoggedIn() {
				t.Fatalf("\t%s\tTest 1:\tShould stay logged out after a reload.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould stay logged out after a reload.", success)
		}

		t.Log("\tTest 2:\tWhen logging in with an empty handle.")
		{
			store, err := session.New(dir)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to open the store: %s", failed, err)
			}
			if err := store.Login(""); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject an empty handle.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject an empty handle.", success)
		}
	}
}
