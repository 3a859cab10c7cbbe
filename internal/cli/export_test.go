package cli

// Export internal functions for testing.

// RunSegment exports runSegment for testing.
var RunSegment = runSegment

// RunEdit exports runEdit for testing.
var RunEdit = runEdit

// RunCheck exports runCheck for testing.
var RunCheck = runCheck

// RunExerciseList exports runExerciseList for testing.
var RunExerciseList = runExerciseList

// RunExerciseShow exports runExerciseShow for testing.
var RunExerciseShow = runExerciseShow

// RunExerciseDelete exports runExerciseDelete for testing.
var RunExerciseDelete = runExerciseDelete

// RunNameCheck exports runNameCheck for testing.
var RunNameCheck = runNameCheck

// RunNameSuggest exports runNameSuggest for testing.
var RunNameSuggest = runNameSuggest

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// IsValidConfigKey exports isValidConfigKey for testing.
var IsValidConfigKey = isValidConfigKey

// ClampParallel exports clampParallel for testing.
var ClampParallel = clampParallel

// ParseFormat exports parseFormat for testing.
var ParseFormat = parseFormat

// WriteFileAtomic exports writeFileAtomic for testing.
var WriteFileAtomic = writeFileAtomic

// SegmentOptions exports segmentOptions for testing.
type SegmentOptions = segmentOptions

// EditOptions exports editOptions for testing.
type EditOptions = editOptions

// CheckOptions exports checkOptions for testing.
type CheckOptions = checkOptions
