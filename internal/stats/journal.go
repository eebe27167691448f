package stats

import (
	"os"

	json "github.com/goccy/go-json"

	"focusd/internal/models"
	"focusd/internal/providers"
	"focusd/internal/stats/interfaces"
	"focusd/internal/structures"
)

// journalFile is the on-disk format for segments awaiting a successful
// store write.
type journalFile struct {
	Pending []models.Segment `json:"pending"`
}

// Journal keeps queued segments on disk so a crash between a failed
// store write and the next flush cannot lose them.
type Journal struct {
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewJournal(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *Journal {
	return &Journal{
		path:       conf.Storage.JournalPath,
		compressor: compressor,
		logger:     logger,
	}
}

// Save replaces the journal with the given queue. An empty queue removes
// the file. The write is atomic: tmp file, sync, rename.
func (j *Journal) Save(pending []models.Segment) error {
	if len(pending) == 0 {
		err := os.Remove(j.path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	jsonData, err := json.Marshal(journalFile{Pending: pending})
	if err != nil {
		return err
	}
	data, err := j.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := j.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, j.path)
}

// Load returns the journaled queue, or nil when no journal exists.
func (j *Journal) Load() ([]models.Segment, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := j.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var jf journalFile
	if err := json.Unmarshal(decompressed, &jf); err != nil {
		return nil, err
	}
	return jf.Pending, nil
}
