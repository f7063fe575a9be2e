// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"github.com/polymesh-go/polymeshd/account"
	"github.com/polymesh-go/polymeshd/primitives"
	"github.com/polymesh-go/polymeshd/system"
)

// Pallet - name used in calls and events
const Pallet = "Identity"

// RegisterDIDArgs - arguments of register_did
type RegisterDIDArgs struct {
	SecondaryKeys []SecondaryKey
}

// CddRegisterDIDArgs - arguments of cdd_register_did
type CddRegisterDIDArgs struct {
	Target        account.Key
	SecondaryKeys []SecondaryKey
	Expiry        primitives.Moment
}

// AddSecondaryKeysArgs - arguments of add_secondary_keys_with_authorization
type AddSecondaryKeysArgs struct {
	Keys   []KeyWithAuthorization
	Expiry primitives.Moment
}

// KeysArgs - a list of keys
type KeysArgs struct {
	Keys []account.Key
}

// KeyArgs - a single key
type KeyArgs struct {
	Key account.Key
}

// SetPermissionArgs - arguments of set_permission_to_signer
type SetPermissionArgs struct {
	Key         account.Key
	Permissions primitives.Permissions
}

// AddAuthorizationArgs - arguments of add_authorization
type AddAuthorizationArgs struct {
	Target primitives.Signatory
	Data   primitives.AuthorizationData
	Expiry primitives.Moment
}

// RemoveAuthorizationArgs - arguments of remove_authorization
type RemoveAuthorizationArgs struct {
	Target primitives.Signatory
	ID     uint64
}

// AuthorizationIDArgs - an authorization id
type AuthorizationIDArgs struct {
	ID uint64
}

// RotatePrimaryKeyArgs - arguments of rotate_primary_key
type RotatePrimaryKeyArgs struct {
	RotationAuthID    uint64
	AttestationAuthID uint64
}

// ClaimArgs - arguments of add_claim and revoke_claim
type ClaimArgs struct {
	Target primitives.DID
	Claim  primitives.Claim
	Expiry primitives.Moment
}

// CustomClaimTypeArgs - arguments of register_custom_claim_type
type CustomClaimTypeArgs struct {
	Name string
}

// CddProviderArgs - arguments of the cdd provider calls
type CddProviderArgs struct {
	DID primitives.DID
	At  primitives.Moment
}

// Calls - the dispatchable operations of this module
func Calls() map[string]system.Handler {
	return map[string]system.Handler{
		"register_did": func(ctx *system.Context, call system.Call) error {
			var args RegisterDIDArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := RegisterDID(ctx, args.SecondaryKeys)
			return err
		},
		"cdd_register_did": func(ctx *system.Context, call system.Call) error {
			var args CddRegisterDIDArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := CddRegisterDID(ctx, args.Target, args.SecondaryKeys, args.Expiry)
			return err
		},
		"add_secondary_keys_with_authorization": func(ctx *system.Context, call system.Call) error {
			var args AddSecondaryKeysArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AddSecondaryKeysWithAuthorization(ctx, args.Keys, args.Expiry)
		},
		"remove_secondary_keys": func(ctx *system.Context, call system.Call) error {
			var args KeysArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RemoveSecondaryKeys(ctx, args.Keys)
		},
		"set_permission_to_signer": func(ctx *system.Context, call system.Call) error {
			var args SetPermissionArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return SetPermissionToSigner(ctx, args.Key, args.Permissions)
		},
		"freeze_secondary_keys": func(ctx *system.Context, call system.Call) error {
			return FreezeSecondaryKeys(ctx)
		},
		"unfreeze_secondary_keys": func(ctx *system.Context, call system.Call) error {
			return UnfreezeSecondaryKeys(ctx)
		},
		"leave_identity_as_key": func(ctx *system.Context, call system.Call) error {
			return LeaveIdentityAsKey(ctx)
		},
		"join_identity_as_key": func(ctx *system.Context, call system.Call) error {
			var args AuthorizationIDArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return JoinIdentityAsKey(ctx, args.ID)
		},
		"add_authorization": func(ctx *system.Context, call system.Call) error {
			var args AddAuthorizationArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := AddAuthorization(ctx, args.Target, args.Data, args.Expiry)
			return err
		},
		"remove_authorization": func(ctx *system.Context, call system.Call) error {
			var args RemoveAuthorizationArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RemoveAuthorization(ctx, args.Target, args.ID)
		},
		"accept_authorization": func(ctx *system.Context, call system.Call) error {
			var args AuthorizationIDArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AcceptAuthorization(ctx, args.ID)
		},
		"rotate_primary_key": func(ctx *system.Context, call system.Call) error {
			var args RotatePrimaryKeyArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RotatePrimaryKey(ctx, args.RotationAuthID, args.AttestationAuthID)
		},
		"create_child_identity": func(ctx *system.Context, call system.Call) error {
			var args KeyArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := CreateChildIdentity(ctx, args.Key)
			return err
		},
		"add_claim": func(ctx *system.Context, call system.Call) error {
			var args ClaimArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AddClaim(ctx, args.Target, args.Claim, args.Expiry)
		},
		"revoke_claim": func(ctx *system.Context, call system.Call) error {
			var args ClaimArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RevokeClaim(ctx, args.Target, args.Claim)
		},
		"register_custom_claim_type": func(ctx *system.Context, call system.Call) error {
			var args CustomClaimTypeArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			_, err := RegisterCustomClaimType(ctx, args.Name)
			return err
		},
		"add_cdd_provider": func(ctx *system.Context, call system.Call) error {
			var args CddProviderArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return AddCddProvider(ctx, args.DID)
		},
		"remove_cdd_provider": func(ctx *system.Context, call system.Call) error {
			var args CddProviderArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return RemoveCddProvider(ctx, args.DID)
		},
		"disable_cdd_provider": func(ctx *system.Context, call system.Call) error {
			var args CddProviderArgs
			if err := call.Decode(&args); nil != err {
				return err
			}
			return DisableCddProvider(ctx, args.DID, args.At)
		},
	}
}
