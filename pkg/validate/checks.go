package validate

// Check names in battery run order, embedded in migration plans so
// callers can see what will gate execution before running it.

// PreFlightChecks lists the pre-flight battery.
func PreFlightChecks() []string {
	return []string{
		"migratable_content_present",
		"entry_points_present",
		"target_sdk_conflict",
	}
}

// PostMigrationChecks lists the post-migration battery, one check per
// known real-world failure cause.
func PostMigrationChecks() []string {
	return []string{
		"para_modal_imported",
		"para_stylesheet_imported",
		"environment_enum_used",
		"old_dependencies_removed",
		"para_dependency_present",
	}
}

// CompletionChecks lists the standalone completion battery.
func CompletionChecks() []string {
	return []string{
		"old_imports_removed",
		"para_hooks_in_use",
		"single_para_provider",
	}
}
