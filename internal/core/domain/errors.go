package domain

import "go.trai.ch/zerr"

var (
	// ErrProtocolViolation classifies input that breaks the line protocol. The process
	// exits with status 2.
	ErrProtocolViolation = zerr.New("protocol violation")

	// ErrUnknownCommand is returned when the protocol keyword is not recognized.
	ErrUnknownCommand = zerr.New("unknown protocol command")

	// ErrMissingArgument is returned when a query command arrives without a specifier.
	ErrMissingArgument = zerr.New("missing package specifier")

	// ErrIndexBuildFailed is returned when the package index cannot be built.
	ErrIndexBuildFailed = zerr.New("failed to build package index")

	// ErrResponseWriteFailed is returned when a response line cannot be written.
	ErrResponseWriteFailed = zerr.New("failed to write response")

	// ErrInputReadFailed is returned when the command stream cannot be read.
	ErrInputReadFailed = zerr.New("failed to read command")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value is out of range or malformed.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrRepoFileParseFailed is returned when a .repo file cannot be parsed.
	ErrRepoFileParseFailed = zerr.New("failed to parse repo file")

	// ErrRepoUnavailable is returned when a repository cannot be loaded.
	ErrRepoUnavailable = zerr.New("repository unavailable")

	// ErrRepoMDParseFailed is returned when repomd.xml cannot be parsed.
	ErrRepoMDParseFailed = zerr.New("failed to parse repomd.xml")

	// ErrPrimaryNotFound is returned when repomd.xml has no primary data entry.
	ErrPrimaryNotFound = zerr.New("repomd.xml has no primary metadata")

	// ErrPrimaryParseFailed is returned when primary metadata cannot be parsed.
	ErrPrimaryParseFailed = zerr.New("failed to parse primary metadata")

	// ErrChecksumMismatch is returned when downloaded metadata does not match its checksum.
	ErrChecksumMismatch = zerr.New("metadata checksum mismatch")

	// ErrUnsupportedChecksum is returned for checksum types that cannot be verified.
	ErrUnsupportedChecksum = zerr.New("unsupported checksum type")

	// ErrRPMDBNotFound is returned when no rpm database exists at the configured path.
	ErrRPMDBNotFound = zerr.New("rpm database not found")

	// ErrRPMDBReadFailed is returned when the rpm database cannot be read.
	ErrRPMDBReadFailed = zerr.New("failed to read rpm database")

	// ErrArchDetectFailed is returned when the host architecture cannot be determined.
	ErrArchDetectFailed = zerr.New("failed to detect host architecture")

	// ErrStoreCreateFailed is returned when the metadata cache directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create metadata cache directory")

	// ErrStoreWriteFailed is returned when a metadata cache entry cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write metadata cache entry")

	// ErrStoreReadFailed is returned when a metadata cache entry cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read metadata cache entry")

	// ErrFetchFailed is returned when remote metadata cannot be downloaded.
	ErrFetchFailed = zerr.New("failed to fetch remote metadata")

	// ErrLogFileOpenFailed is returned when the configured log file cannot be opened.
	ErrLogFileOpenFailed = zerr.New("failed to open log file")

	// ErrLogFileCloseFailed is returned when the log file cannot be closed.
	ErrLogFileCloseFailed = zerr.New("failed to close log file")
)
