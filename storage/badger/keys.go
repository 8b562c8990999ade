package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for different data types
const (
	recordPrefix             = "convrec"
	recordConversationPrefix = "convrecn"
	recordIDSeq              = "convrecseq"
	checkpointPrefix         = "ingchkpt"
)

// makeRecordKey generates a key for a record by ID.
// IDs are encoded BigEndian so lexicographic key order matches numeric
// ID order, which is ingestion order.
func makeRecordKey(id uint64) []byte {
	prefix := recordPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], id)
	return buf
}

// makeConversationKey generates a key for the conversation number index.
// Format: prefix:conversation
func makeConversationKey(conversation int) []byte {
	prefix := recordConversationPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(conversation))
	return buf
}

// makeCheckpointKey generates a key for a named ingest checkpoint.
func makeCheckpointKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", checkpointPrefix, name))
}
