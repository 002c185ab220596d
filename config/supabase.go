package config

import (
	"log"

	supa "github.com/supabase-community/supabase-go"
)

var SupabaseClient *supa.Client

// InitSupabase initializes the shared Supabase client from the loaded
// configuration. When the URL or the anonymous key is absent the client
// stays nil, which switches the whole gateway into local-fallback mode.
func InitSupabase(cfg *Config) error {
	if !cfg.RemoteEnabled() {
		log.Println("Warning: Supabase not configured (SUPABASE_URL / SUPABASE_ANON_KEY). Running in local-fallback mode.")
		SupabaseClient = nil
		return nil
	}

	client, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	if err != nil {
		log.Printf("Error initializing Supabase client: %v", err)
		return err
	}

	SupabaseClient = client
	log.Println("Supabase client initialized successfully.")
	return nil
}
