// SPDX-License-Identifier: BSD-3-Clause

// Package id provides UUID-based identifier generation and management for
// persistent and ephemeral identification needs. The package wraps Google's
// UUID library with convenient functions for generating new identifiers and
// managing persistent identifiers that survive application restarts.
//
// This package is particularly useful for system services that need stable,
// unique identifiers for configuration management, device identification,
// session tracking, and other scenarios where consistent identification
// across restarts is required.
//
// # Core Functionality
//
// The package provides three main functions:
//
//   - NewID: Generates a new random UUID for one-time use
//   - GetOrCreatePersistentID: Retrieves an existing UUID from disk or creates
//     a new one if none exists, ensuring the same ID is returned on subsequent calls
//   - UpdatePersistentID: Generates a new UUID and updates the persistent storage,
//     useful for identifier rotation or reset scenarios
//
// # Basic Usage
//
// Generating a new ephemeral UUID:
//
//	connID := id.NewID()
//	log.Printf("New connection: %s", connID)
//
// Creating or retrieving a persistent instance identifier:
//
//	instanceID, err := id.GetOrCreatePersistentID("id", "/root/.tutti")
//	if err != nil {
//		log.Fatalf("failed to get instance id: %v", err)
//	}
//	log.Printf("instance id: %s", instanceID)
//
// # Persistent ID Management
//
// The persistent ID functions are designed for scenarios where you need
// stable identifiers across application restarts:
//
//	func initializeDaemon(systemDir string) error {
//		// This will create <systemDir>/id on first run and read the
//		// existing id on subsequent runs.
//		instanceID, err := id.GetOrCreatePersistentID("id", systemDir)
//		if err != nil {
//			return fmt.Errorf("failed to initialize daemon id: %w", err)
//		}
//
//		log.Printf("tuttid instance id: %s", instanceID)
//		return nil
//	}
//
// # Multiple Persistent Identifiers
//
// Applications often need multiple types of persistent identifiers:
//
//	type DaemonIdentifiers struct {
//		InstanceID string
//		ConnID     string
//	}
//
//	func loadDaemonIdentifiers(systemDir string) (*DaemonIdentifiers, error) {
//		// InstanceID persists across daemon restarts for log correlation.
//		instanceID, err := id.GetOrCreatePersistentID("id", systemDir)
//		if err != nil {
//			return nil, fmt.Errorf("failed to get instance id: %w", err)
//		}
//
//		// ConnID changes on every accepted client connection.
//		connID := id.NewID()
//
//		return &DaemonIdentifiers{InstanceID: instanceID, ConnID: connID}, nil
//	}
//
// # Identifier Rotation
//
// For security or compliance reasons, you might need to rotate identifiers:
//
//	func rotateInstanceID(systemDir string) error {
//		oldID, err := id.GetOrCreatePersistentID("id", systemDir)
//		if err != nil {
//			return fmt.Errorf("failed to get current instance id: %w", err)
//		}
//
//		newID, err := id.UpdatePersistentID("id", systemDir)
//		if err != nil {
//			return fmt.Errorf("failed to rotate instance id: %w", err)
//		}
//
//		log.Printf("rotated instance id from %s to %s", oldID, newID)
//		return nil
//	}
//
// # Error Handling
//
// The package functions can fail for various filesystem-related reasons:
//
//	instanceID, err := id.GetOrCreatePersistentID("id", systemDir)
//	if err != nil {
//		switch {
//		case errors.Is(err, id.ErrDirectoryCreation):
//			log.Printf("failed to create system directory: %v", err)
//		case errors.Is(err, id.ErrFileCreation):
//			log.Printf("failed to create id file: %v", err)
//		case errors.Is(err, id.ErrFileRead):
//			log.Printf("failed to read id file: %v", err)
//		case errors.Is(err, id.ErrInvalidUUID):
//			log.Printf("existing id file contains invalid UUID: %v", err)
//		default:
//			log.Printf("unexpected error: %v", err)
//		}
//		return err
//	}
//
// # Concurrent Access
//
// The persistent ID functions are safe for concurrent access from multiple
// goroutines within the same process. However, be aware that:
//
//   - Multiple processes accessing the same ID file may race during creation
//   - File locking is not implemented, so external coordination may be needed
//   - The underlying file.AtomicCreateFile ensures atomic creation operations
//
// Example of safe concurrent usage:
//
//	func startWorkers(numWorkers int) error {
//		var wg sync.WaitGroup
//		errors := make(chan error, numWorkers)
//
//		for i := 0; i < numWorkers; i++ {
//			wg.Add(1)
//			go func(workerID int) {
//				defer wg.Done()
//
//				// Every connection handler resolves the same instance id.
//				instanceID, err := id.GetOrCreatePersistentID("id", "/root/.tutti")
//				if err != nil {
//					errors <- fmt.Errorf("worker %d failed to get instance id: %w", workerID, err)
//					return
//				}
//
//				// But each connection gets its own correlation id.
//				connID := id.NewID()
//
//				log.Printf("worker %d: instance=%s conn=%s", workerID, instanceID, connID)
//			}(i)
//		}
//
//		wg.Wait()
//		close(errors)
//
//		for err := range errors {
//			return err
//		}
//
//		return nil
//	}
//
// # File Format and Storage
//
// Persistent IDs are stored as plain text files containing the UUID string.
// The files are created with standard permissions and can be read by any
// process with appropriate filesystem access:
//
//	$ cat ~/.tutti/id
//	a1b2c3d4-e5f6-7890-abcd-ef1234567890
//
// This simple format makes the IDs easily accessible from shell scripts,
// configuration management tools, and other applications.
//
// # Best Practices
//
// When using this package:
//
//   - Use descriptive filenames for different types of IDs (tutti only ever
//     persists one, named "id", under the daemon's system directory)
//   - Store persistent IDs under the same system directory as the daemon's
//     other runtime state (the socket file, in tutti's case)
//   - Set proper directory permissions to control access to ID files
//   - Consider ID rotation policies for security-sensitive applications
//   - Document the purpose and lifecycle of each persistent identifier
//   - Use ephemeral IDs (NewID) for temporary identifiers that shouldn't persist
package id
