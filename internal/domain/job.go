package domain

// TransferJob describes one raw socket delivery of a prepared file.
type TransferJob struct {
	Host     string
	Port     uint16
	FilePath string
	Copies   int
}

func NewTransferJob(target Target, filePath string, copies int) TransferJob {
	return TransferJob{
		Host:     target.IP,
		Port:     target.Port,
		FilePath: filePath,
		Copies:   copies,
	}
}

// TransferProgress is the byte position within a single copy. BytesSent
// starts at zero for every copy.
type TransferProgress struct {
	Copy       int
	Copies     int
	BytesSent  uint64
	TotalBytes uint64
}

func (p TransferProgress) Done() bool {
	return p.BytesSent >= p.TotalBytes
}
