// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError
type RecordError GenericError
type ResourceError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrBadOrigin            = PermissionError("bad origin")
	ErrCannotDecodeCall     = InvalidError("cannot decode call arguments")
	ErrCannotDecodeKey      = InvalidError("cannot decode key")
	ErrChecksumMismatch     = InvalidError("checksum mismatch")
	ErrDuplicateExtrinsic   = ExistsError("duplicate extrinsic")
	ErrInvalidBlockInterval = InvalidError("invalid block interval")
	ErrInvalidChain         = InvalidError("invalid chain")
	ErrInvalidCount         = InvalidError("invalid count")
	ErrInvalidIPAddress     = InvalidError("invalid IP address")
	ErrInvalidKeyLength     = LengthError("invalid key length")
	ErrInvalidLoggerChannel = InvalidError("invalid logger channel")
	ErrInvalidNonce         = InvalidError("invalid nonce")
	ErrInvalidSignature     = InvalidError("invalid signature")
	ErrMissingParameters    = InvalidError("missing parameters")
	ErrNodeStopped          = ProcessError("node is not accepting extrinsics")
	ErrNotInitialised       = NotFoundError("not initialised")
	ErrNotFoundConfigFile   = NotFoundError("configuration file is not found")
	ErrNotConfigTable       = InvalidError("configuration did not return a table")
	ErrPendingQueueFull     = ResourceError("pending extrinsic queue is full")
	ErrRateLimiting         = ResourceError("rate limiting")
	ErrSavepointUnderflow   = ProcessError("no savepoint to release")
	ErrTransactionInUse     = ProcessError("transaction already in use")
	ErrTransactionNotActive = ProcessError("transaction not active")
	ErrUnknownCall          = NotFoundError("unknown call")
	ErrWrongNetworkForKey   = InvalidError("wrong network for key")
)

// authorization and identity
var (
	ErrAlreadyCddProvider                    = ExistsError("already a cdd provider")
	ErrAlreadyFrozen                         = InvalidError("already frozen")
	ErrAuthorizationExpired                  = InvalidError("authorization expired")
	ErrAuthorizationHasBeenRevoked           = InvalidError("authorization has been revoked")
	ErrAuthorizationNotFound                 = NotFoundError("authorization not found")
	ErrCddMissing                            = PermissionError("caller has no valid cdd claim")
	ErrClaimDoesNotExist                     = NotFoundError("claim does not exist")
	ErrCustomClaimTypeAlreadyExists          = ExistsError("custom claim type already exists")
	ErrCustomClaimTypeDoesNotExist           = NotFoundError("custom claim type does not exist")
	ErrCustomClaimTypeNameTooLong            = LengthError("custom claim type name too long")
	ErrCustomScopeTooLong                    = LengthError("custom scope too long")
	ErrDidAlreadyExists                      = ExistsError("did already exists")
	ErrDidDoesNotExist                       = NotFoundError("did does not exist")
	ErrInvalidAuthorizationFromOwner         = PermissionError("authorization issuer is not the owner")
	ErrInvalidAuthorizationKind              = InvalidError("invalid authorization kind for target")
	ErrIsChildIdentity                       = InvalidError("identity is already a child identity")
	ErrKeyAlreadyLinked                      = ExistsError("key already linked to an identity")
	ErrMissingIdentity                       = NotFoundError("missing identity")
	ErrNotACddProvider                       = NotFoundError("not a cdd provider")
	ErrNotASecondaryKey                      = NotFoundError("not a secondary key of this identity")
	ErrNotFrozen                             = InvalidError("not frozen")
	ErrNotPrimaryKey                         = PermissionError("only the primary key may perform this operation")
	ErrPermissionDenied                      = PermissionError("permission denied")
	ErrSecondaryKeyNotAuthorizedForAsset     = PermissionError("secondary key not authorized for asset")
	ErrSecondaryKeyNotAuthorizedForPortfolio = PermissionError("secondary key not authorized for portfolio")
	ErrUnAuthorizedCddProvider               = PermissionError("claim issuer is not an authorized cdd provider")
	ErrUnauthorizedAgent                     = PermissionError("caller is not an authorized agent")
	ErrUnauthorizedKey                       = PermissionError("key is not authorized for this target")
)

// asset
var (
	ErrAlreadyAnAgent                      = ExistsError("already an agent")
	ErrAssetAlreadyCreated                 = ExistsError("asset already created")
	ErrAssetMetadataGlobalKeyAlreadyExists = ExistsError("asset metadata global key already exists")
	ErrAssetMetadataKeyIsMissing           = NotFoundError("asset metadata key is missing")
	ErrAssetMetadataLocalKeyAlreadyExists  = ExistsError("asset metadata local key already exists")
	ErrAssetMetadataNameTooLong            = LengthError("asset metadata name too long")
	ErrAssetMetadataValueIsLocked          = PermissionError("asset metadata value is locked")
	ErrAssetMetadataValueTooLong           = LengthError("asset metadata value too long")
	ErrAssetNameTooLong                    = LengthError("asset name too long")
	ErrCheckpointDoesNotExist              = NotFoundError("checkpoint does not exist")
	ErrDocumentDoesNotExist                = NotFoundError("document does not exist")
	ErrDocumentFieldTooLong                = LengthError("document field too long")
	ErrInsufficientBalance                 = InvalidError("insufficient balance")
	ErrInvalidGranularity                  = InvalidError("invalid granularity")
	ErrInvalidSchedule                     = InvalidError("invalid checkpoint schedule")
	ErrInvalidTickerCharacter              = InvalidError("invalid ticker character")
	ErrInvalidTransferFrozenAsset          = PermissionError("invalid transfer of frozen asset")
	ErrNFTCollectionAlreadyExists          = ExistsError("nft collection already exists")
	ErrNFTCollectionNotFound               = NotFoundError("nft collection not found")
	ErrNFTNotFound                         = NotFoundError("nft not found")
	ErrNFTNotOwnedByPortfolio              = PermissionError("nft not held by portfolio")
	ErrNoSuchAsset                         = NotFoundError("no such asset")
	ErrNotAnAgent                          = NotFoundError("not an agent")
	ErrRemovingLastFullAgent               = InvalidError("cannot remove the last full agent")
	ErrScheduleDoesNotExist                = NotFoundError("checkpoint schedule does not exist")
	ErrTickerAlreadyRegistered             = ExistsError("ticker already registered")
	ErrTickerFirstByteNotValid             = InvalidError("ticker first byte not valid")
	ErrTickerNotRegistered                 = NotFoundError("ticker not registered")
	ErrTickerTooLong                       = LengthError("ticker too long")
	ErrTotalSupplyAboveLimit               = InvalidError("total supply above limit")
	ErrUnexpectedFungibleToken             = InvalidError("unexpected fungible token")
	ErrUnexpectedNonFungibleToken          = InvalidError("unexpected non-fungible token")
)

// portfolio
var (
	ErrCustodianMismatch            = PermissionError("caller is not the portfolio custodian")
	ErrDefaultPortfolioImmutable    = InvalidError("default portfolio cannot be modified")
	ErrDestinationIsSamePortfolio   = InvalidError("destination is the same portfolio")
	ErrDifferentIdentityPortfolios  = InvalidError("portfolios belong to different identities")
	ErrInsufficientPortfolioBalance = InvalidError("insufficient portfolio balance")
	ErrInsufficientTokensLocked     = InvalidError("insufficient tokens locked")
	ErrInvalidPortfolioName         = LengthError("invalid portfolio name")
	ErrPortfolioDoesNotExist        = NotFoundError("portfolio does not exist")
	ErrPortfolioNameAlreadyInUse    = ExistsError("portfolio name already in use")
	ErrPortfolioNotEmpty            = InvalidError("portfolio not empty")
)

// compliance
var (
	ErrComplianceRequirementNotFound     = NotFoundError("compliance requirement not found")
	ErrComplianceRequirementTooComplex   = LengthError("compliance requirement too complex")
	ErrDuplicateComplianceRequirements   = ExistsError("duplicate compliance requirements")
	ErrIncorrectOperationOnTrustedIssuer = InvalidError("incorrect operation on trusted issuer")
	ErrInvalidTransferComplianceFailure  = PermissionError("invalid transfer compliance failure")
)

// settlement
var (
	ErrFailedToLockTokens          = InvalidError("failed to lock tokens")
	ErrInstructionFailedToExecute  = ProcessError("instruction failed to execute")
	ErrInstructionNotFailed        = InvalidError("instruction is not in failed state")
	ErrInstructionNotAffirmed      = InvalidError("instruction not affirmed by portfolio")
	ErrInstructionNotFound         = NotFoundError("instruction not found")
	ErrInstructionNotPending       = InvalidError("instruction not pending")
	ErrInvalidDates                = InvalidError("value date is before trade date")
	ErrInvalidVenue                = NotFoundError("invalid venue")
	ErrMaxLegsExceeded             = LengthError("maximum legs exceeded")
	ErrMediatorAffirmationMissing  = NotFoundError("mediator affirmation missing")
	ErrNFTAlreadyLocked            = InvalidError("nft already locked")
	ErrNoLegs                      = LengthError("instruction has no legs")
	ErrNoPendingAffirm             = NotFoundError("no pending affirmation for portfolio")
	ErrNotAMediator                = PermissionError("caller is not a mediator of this instruction")
	ErrNotAVenueSigner             = PermissionError("not a venue signer")
	ErrReceiptAlreadyClaimed       = ExistsError("receipt already claimed")
	ErrSameSenderReceiver          = InvalidError("leg sender and receiver are the same portfolio")
	ErrSettleOnPastBlock           = InvalidError("settlement block is in the past")
	ErrUnauthorized                = PermissionError("caller is not the venue creator")
	ErrUnauthorizedVenue           = PermissionError("venue not allowed for asset")
	ErrUnexpectedAffirmationStatus = InvalidError("unexpected affirmation status")
	ErrVenueDetailsTooLong         = LengthError("venue details too long")
	ErrZeroAmount                  = InvalidError("leg amount is zero")
)

// multisig and committee
var (
	ErrAlreadyASigner                = ExistsError("already a signer")
	ErrAlreadyVoted                  = ExistsError("already voted")
	ErrCommitteeAlreadyExists        = ExistsError("committee already exists")
	ErrInvalidThreshold              = InvalidError("invalid threshold")
	ErrMismatchedVotingIndex         = InvalidError("mismatched voting index")
	ErrNoSuchCommittee               = NotFoundError("no such committee")
	ErrNoSuchMultisig                = NotFoundError("no such multisig")
	ErrNotACommitteeMember           = PermissionError("not a committee member")
	ErrNotASigner                    = PermissionError("not a signer")
	ErrNotEnoughSigners              = LengthError("not enough signers")
	ErrNotMultisigCreator            = PermissionError("not the multisig creator")
	ErrProposalAlreadyHandled        = InvalidError("proposal already handled")
	ErrProposalExists                = ExistsError("proposal already exists")
	ErrProposalExpired               = InvalidError("proposal expired")
	ErrProposalNotFound              = NotFoundError("proposal not found")
	ErrRequiredSignaturesOutOfBounds = InvalidError("required signatures out of bounds")
	ErrSignerAlreadyLinked           = ExistsError("signer already linked")
	ErrSignersBelowThreshold         = InvalidError("signers below threshold")
	ErrThresholdNotReached           = InvalidError("threshold not reached")
)

// blocks
var (
	ErrBlockMomentRegressed        = InvalidError("block moment regressed")
	ErrHeightOutOfSequence         = InvalidError("height out of sequence")
	ErrPreviousBlockDigestMismatch = InvalidError("previous block digest does not match")
	ErrBlockNotFound               = NotFoundError("block not found")
	ErrGenesisAlreadyWritten       = ExistsError("genesis block already written")
)

// resource
var (
	ErrStorageVersionMismatch = ResourceError("storage version mismatch")
	ErrWeightExhausted        = ResourceError("weight exhausted")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }
func (e ResourceError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool     { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool     { _, ok := e.(RecordError); return ok }
func IsErrResource(e error) bool   { _, ok := e.(ResourceError); return ok }
